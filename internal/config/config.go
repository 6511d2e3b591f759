package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	AppName        = "KodiTextureTool"
	AppVersion     = "v3.1.7"
	DefaultLogName = "TextureTool_Log.txt"
)

// Config holds runtime settings resolved from the environment.
type Config struct {
	AppDir    string
	ConfigDir string
	LogFile   string
	UpdateURL string
	Pipeline  PipelineConfig
	Log       LogConfig
}

type PipelineConfig struct {
	GracePeriod time.Duration
	BatchSize   int
	LogInterval time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads envFilePath when present, then the KTT_* environment variables.
func Load(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	appDir, err := defaultAppDir()
	if err != nil {
		return nil, err
	}
	configDir, err := defaultConfigDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppDir:    getEnv("KTT_APP_DIR", appDir),
		ConfigDir: getEnv("KTT_CONFIG_DIR", configDir),
		UpdateURL: getEnv("KTT_UPDATE_URL", ""),
		Pipeline: PipelineConfig{
			GracePeriod: getEnvAsDuration("KTT_GRACE_PERIOD", 2*time.Second),
			BatchSize:   getEnvAsInt("KTT_BATCH_SIZE", 25),
			LogInterval: getEnvAsDuration("KTT_LOG_INTERVAL", 10*time.Millisecond),
		},
		Log: LogConfig{
			Level:  getEnv("KTT_LOG_LEVEL", "info"),
			Format: getEnv("KTT_LOG_FORMAT", "text"),
		},
	}
	cfg.LogFile = getEnv("KTT_LOG_FILE", filepath.Join(cfg.ConfigDir, DefaultLogName))

	return cfg, nil
}

// SettingsFile is the INI file holding recent lists and preferences.
func (c *Config) SettingsFile() string {
	return filepath.Join(c.ConfigDir, "config.ini")
}

// Workspace is the scratch copy of the bundled tools.
func (c *Config) Workspace() string {
	return filepath.Join(c.AppDir, "_temp")
}

func defaultAppDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return os.Getwd()
	}
	return filepath.Dir(exe), nil
}

func defaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("2s") or bare milliseconds ("2000").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(valueStr); err == nil && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}
