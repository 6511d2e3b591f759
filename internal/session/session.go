package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"texturetool/internal/gallery"
	"texturetool/internal/logbuf"
	"texturetool/internal/pipeline"
	"texturetool/internal/settings"
)

var (
	ErrTaskActive  = errors.New("another task is already in progress")
	ErrNoWorkspace = errors.New("workspace not available")
	ErrNoRecords   = errors.New("no texture records")
)

const (
	workspaceName = "_temp"
	cachePrefix   = "ktt_info_cache_"
	updateBuffer  = 64
)

type Options struct {
	AppDir      string
	TempDir     string
	GracePeriod time.Duration
	BatchSize   int
	ShowConsole bool

	// ToolPaths overrides the executable used for a tool. The process still
	// runs in the workspace tool directory.
	ToolPaths map[Tool]string

	Now func() time.Time
}

// Session is the state shared by every task of one program run: the task
// lock, the workspace copy of the tools, the info cache and the gallery.
type Session struct {
	opts     Options
	store    *settings.Store
	renderer *logbuf.Renderer
	logger   *slog.Logger
	gallery  *gallery.Gallery
	updates  chan Update

	mu        sync.Mutex
	active    string
	current   *pipeline.Supervisor
	workspace string
	cacheDir  string
}

func New(opts Options, store *settings.Store, renderer *logbuf.Renderer, logger *slog.Logger) *Session {
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = pipeline.DefaultGracePeriod
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = pipeline.DefaultBatchSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if renderer == nil {
		renderer = logbuf.NewRenderer(nil, nil, nil, logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		opts:     opts,
		store:    store,
		renderer: renderer,
		logger:   logger,
		gallery:  gallery.New(),
		updates:  make(chan Update, updateBuffer),
	}
}

func (s *Session) Gallery() *gallery.Gallery {
	return s.gallery
}

func (s *Session) Renderer() *logbuf.Renderer {
	return s.renderer
}

func (s *Session) Store() *settings.Store {
	return s.store
}

// Updates carries progress for the running task. Sends never block; a slow
// reader only misses intermediate values.
func (s *Session) Updates() <-chan Update {
	return s.updates
}

// Active reports the name of the task holding the lock.
func (s *Session) Active() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.active != ""
}

func (s *Session) Workspace() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workspace
}

func (s *Session) CacheDir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cacheDir
}

// SetupWorkspace recreates <app>/_temp and copies the bundled tools into it.
// Missing files are logged and skipped.
func (s *Session) SetupWorkspace() error {
	dir := filepath.Join(s.opts.AppDir, workspaceName)
	if err := os.RemoveAll(dir); err != nil {
		s.renderer.Logf("[ERROR] Could not create temp workspace: %v", err)
		return fmt.Errorf("remove old workspace: %w", err)
	}
	for _, t := range []Tool{Compiler, Extractor} {
		if err := os.MkdirAll(filepath.Join(dir, t.Dir()), 0o755); err != nil {
			s.renderer.Logf("[ERROR] Could not create temp workspace: %v", err)
			return fmt.Errorf("create workspace: %w", err)
		}
	}
	s.renderer.Logf("[INFO] Created local workspace: %s", filepath.Clean(dir))

	for _, name := range RequiredFiles() {
		src := filepath.Join(s.opts.AppDir, name)
		if _, err := os.Stat(src); err != nil {
			s.renderer.Logf("[WARN] Required file not found, skipping: %s", name)
			continue
		}
		if err := copyFile(src, filepath.Join(dir, name)); err != nil {
			s.renderer.Logf("[ERROR] Could not create temp workspace: %v", err)
			return err
		}
	}

	s.mu.Lock()
	s.workspace = dir
	s.mu.Unlock()
	return nil
}

// Close kills a running child and removes the workspace and info cache.
func (s *Session) Close() error {
	s.mu.Lock()
	current := s.current
	workspace, cacheDir := s.workspace, s.cacheDir
	s.workspace, s.cacheDir = "", ""
	s.mu.Unlock()

	var errs []error
	if current != nil {
		errs = append(errs, current.Kill())
	}
	for _, dir := range []string{workspace, cacheDir} {
		if dir == "" {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			errs = append(errs, err)
		}
	}
	s.renderer.Drain()
	return errors.Join(errs...)
}

// acquire takes the task lock. The returned release is safe to call more
// than once.
func (s *Session) acquire(name string) (func(), error) {
	s.mu.Lock()
	if s.active != "" {
		s.mu.Unlock()
		s.renderer.Log("[WARN] Another task is already in progress. Please wait.")
		return nil, ErrTaskActive
	}
	if s.workspace == "" {
		s.mu.Unlock()
		s.renderer.Log("[ERROR] Cannot start task, workspace not available.")
		return nil, ErrNoWorkspace
	}
	s.active = name
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.active = ""
			s.current = nil
			s.mu.Unlock()
		})
	}, nil
}

// Publish offers u to the Updates channel without blocking.
func (s *Session) Publish(u Update) {
	select {
	case s.updates <- u:
	default:
	}
}

func (s *Session) toolCommand(t Tool) (exe, dir string) {
	s.mu.Lock()
	workspace := s.workspace
	s.mu.Unlock()

	dir = filepath.Join(workspace, t.Dir())
	if p, ok := s.opts.ToolPaths[t]; ok && p != "" {
		return p, dir
	}
	return filepath.Join(dir, t.Executable()), dir
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
