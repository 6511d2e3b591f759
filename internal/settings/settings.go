package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"gopkg.in/ini.v1"
)

const (
	FileName  = "config.ini"
	MaxRecent = 8

	sectionRecent   = "Recent"
	sectionPaths    = "Paths"
	sectionSettings = "Settings"

	DefaultUpdateURL = "https://raw.githubusercontent.com/kittmaster/KodiTextureTool/main/version.json"
)

var ErrUnknownSetting = errors.New("unknown setting")

type RecentGroup int

const (
	CompileFiles RecentGroup = iota
	CompileFolders
	DecompileFiles
	DecompileFolders
)

var RecentGroups = []RecentGroup{CompileFiles, CompileFolders, DecompileFiles, DecompileFolders}

func (g RecentGroup) String() string {
	switch g {
	case CompileFiles:
		return "compile_files"
	case CompileFolders:
		return "compile_folders"
	case DecompileFiles:
		return "decompile_files"
	case DecompileFolders:
		return "decompile_folders"
	default:
		return fmt.Sprintf("recent(%d)", int(g))
	}
}

func ParseRecentGroup(s string) (RecentGroup, error) {
	for _, g := range RecentGroups {
		if g.String() == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown recent group %q", s)
}

type PathKey string

const (
	DecompileInput  PathKey = "decompileinput"
	DecompileOutput PathKey = "decompileoutput"
	CompileInput    PathKey = "compileinput"
	CompileOutput   PathKey = "compileoutput"
)

type Prefs struct {
	OpenDecompileOnComplete  bool   `ini:"open_decompile_on_complete"`
	OpenCompileOnComplete    bool   `ini:"open_compile_on_complete"`
	OpenPDFOnComplete        bool   `ini:"open_pdf_on_complete"`
	CheckForUpdatesOnStartup bool   `ini:"check_for_updates_on_startup"`
	LogOnTop                 bool   `ini:"log_on_top"`
	DecompileOnTop           bool   `ini:"decompile_on_top"`
	DevUpdateURL             string `ini:"dev_update_url"`
}

func DefaultPrefs() Prefs {
	return Prefs{
		OpenDecompileOnComplete:  true,
		OpenCompileOnComplete:    true,
		OpenPDFOnComplete:        true,
		CheckForUpdatesOnStartup: true,
		LogOnTop:                 true,
		DecompileOnTop:           false,
		DevUpdateURL:             DefaultUpdateURL,
	}
}

func (p *Prefs) flags() map[string]*bool {
	return map[string]*bool{
		"open_decompile_on_complete":   &p.OpenDecompileOnComplete,
		"open_compile_on_complete":     &p.OpenCompileOnComplete,
		"open_pdf_on_complete":         &p.OpenPDFOnComplete,
		"check_for_updates_on_startup": &p.CheckForUpdatesOnStartup,
		"log_on_top":                   &p.LogOnTop,
		"decompile_on_top":             &p.DecompileOnTop,
	}
}

// Entry is one named preference rendered as text.
type Entry struct {
	Name  string
	Value string
}

// Store persists recent lists, last-used paths and preferences in an INI
// file. Every mutation rereads the file and rewrites it whole, so sections
// written by other tools survive.
type Store struct {
	mu     sync.Mutex
	path   string
	appDir string
	recent map[RecentGroup][]string
	paths  map[PathKey]string
	prefs  Prefs
}

// Open loads path, creating it with an empty [Recent] section when missing.
func Open(path, appDir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, []byte("["+sectionRecent+"]\n"), 0o644); err != nil {
			return nil, fmt.Errorf("create config: %w", err)
		}
	}

	s := &Store{path: path, appDir: appDir}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) File() string {
	return s.path
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.read()
	if err != nil {
		return err
	}

	s.recent = make(map[RecentGroup][]string, len(RecentGroups))
	recent := cfg.Section(sectionRecent)
	for _, g := range RecentGroups {
		var items []string
		if err := json.Unmarshal([]byte(recent.Key(g.String()).MustString("[]")), &items); err != nil {
			items = nil
		}
		s.recent[g] = items
	}

	s.paths = make(map[PathKey]string)
	for _, key := range cfg.Section(sectionPaths).Keys() {
		s.paths[PathKey(key.Name())] = key.String()
	}

	prefs := DefaultPrefs()
	if err := cfg.Section(sectionSettings).MapTo(&prefs); err != nil {
		return fmt.Errorf("read settings: %w", err)
	}
	s.prefs = prefs
	return nil
}

func (s *Store) Recent(g RecentGroup) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.recent[g])
}

// AddRecent moves path to the front of g, dropping the oldest entry past
// MaxRecent.
func (s *Store) AddRecent(g RecentGroup, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := slices.DeleteFunc(slices.Clone(s.recent[g]), func(item string) bool { return item == path })
	items = slices.Insert(items, 0, path)
	if len(items) > MaxRecent {
		items = items[:MaxRecent]
	}
	s.recent[g] = items
	return s.save()
}

func (s *Store) ClearRecent(g RecentGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent[g] = nil
	return s.save()
}

// Path returns the last used location for key, or the application directory.
func (s *Store) Path(key PathKey) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.paths[key]; ok && p != "" {
		return p
	}
	return s.appDir
}

func (s *Store) SetPath(key PathKey, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths[key] = path
	return s.save()
}

func (s *Store) Prefs() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

func (s *Store) SetPrefs(p Prefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = p
	return s.save()
}

// Set updates one preference by its INI key name.
func (s *Store) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := s.prefs
	if name == "dev_update_url" {
		prefs.DevUpdateURL = value
	} else {
		flag, ok := prefs.flags()[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownSetting, name)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
		*flag = b
	}
	s.prefs = prefs
	return s.save()
}

// Entries lists every preference in file order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	prefs := s.prefs
	s.mu.Unlock()

	flags := prefs.flags()
	names := []string{
		"open_decompile_on_complete",
		"open_compile_on_complete",
		"open_pdf_on_complete",
		"check_for_updates_on_startup",
		"log_on_top",
		"decompile_on_top",
	}
	entries := make([]Entry, 0, len(names)+1)
	for _, name := range names {
		entries = append(entries, Entry{Name: name, Value: strconv.FormatBool(*flags[name])})
	}
	return append(entries, Entry{Name: "dev_update_url", Value: prefs.DevUpdateURL})
}

func (s *Store) read() (*ini.File, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{Loose: true, IgnoreInlineComment: true}, s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return cfg, nil
}

func (s *Store) save() error {
	cfg, err := s.read()
	if err != nil {
		return err
	}

	recent := cfg.Section(sectionRecent)
	for _, g := range RecentGroups {
		items := s.recent[g]
		if items == nil {
			items = []string{}
		}
		data, err := json.Marshal(items)
		if err != nil {
			return err
		}
		recent.Key(g.String()).SetValue(string(data))
	}

	paths := cfg.Section(sectionPaths)
	for key, value := range s.paths {
		paths.Key(string(key)).SetValue(value)
	}

	if err := cfg.Section(sectionSettings).ReflectFrom(&s.prefs); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	if err := cfg.SaveTo(s.path); err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	return nil
}
