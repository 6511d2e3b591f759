package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KTT_CONFIG_DIR", dir)
	t.Setenv("KTT_APP_DIR", "")
	t.Setenv("KTT_LOG_FILE", "")
	t.Setenv("KTT_GRACE_PERIOD", "")
	t.Setenv("KTT_BATCH_SIZE", "")
	t.Setenv("KTT_LOG_LEVEL", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Equal(t, filepath.Join(dir, DefaultLogName), cfg.LogFile)
	assert.Equal(t, filepath.Join(dir, "config.ini"), cfg.SettingsFile())
	assert.NotEmpty(t, cfg.AppDir)
	assert.Equal(t, filepath.Join(cfg.AppDir, "_temp"), cfg.Workspace())
	assert.Equal(t, 2*time.Second, cfg.Pipeline.GracePeriod)
	assert.Equal(t, 25, cfg.Pipeline.BatchSize)
	assert.Equal(t, 10*time.Millisecond, cfg.Pipeline.LogInterval)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "KTT_BATCH_SIZE=10\nKTT_GRACE_PERIOD=500ms\nKTT_LOG_INTERVAL=50\nKTT_APP_DIR=" + dir + "\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	// godotenv does not override variables that are already set, so clear
	// them through t.Setenv and let cleanup restore the originals.
	for _, key := range []string{"KTT_BATCH_SIZE", "KTT_GRACE_PERIOD", "KTT_LOG_INTERVAL", "KTT_APP_DIR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("KTT_CONFIG_DIR", dir)

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Pipeline.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Pipeline.GracePeriod)
	assert.Equal(t, 50*time.Millisecond, cfg.Pipeline.LogInterval)
	assert.Equal(t, dir, cfg.AppDir)
}

func TestLoadMissingEnvFile(t *testing.T) {
	t.Setenv("KTT_CONFIG_DIR", t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("KTT_BATCH_SIZE", "lots")
	t.Setenv("KTT_GRACE_PERIOD", "-3s")

	assert.Equal(t, 25, getEnvAsInt("KTT_BATCH_SIZE", 25))
	assert.Equal(t, time.Second, getEnvAsDuration("KTT_GRACE_PERIOD", time.Second))
}
