package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"texturetool/internal/config"
	"texturetool/internal/logbuf"
	"texturetool/internal/logging"
	"texturetool/internal/session"
	"texturetool/internal/settings"
	"texturetool/internal/tui"
)

// app is everything one command invocation needs.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	fileLog  *logbuf.FileLogger
	store    *settings.Store
	renderer *logbuf.Renderer
	session  *session.Session
}

func newApp() (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	level := logging.ParseLevel(cfg.Log.Level)
	if verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(logging.Config{Level: level, Format: cfg.Log.Format, Output: os.Stderr})

	store, err := settings.Open(cfg.SettingsFile(), cfg.AppDir)
	if err != nil {
		return nil, err
	}

	fileLog, err := logbuf.OpenFileLogger(cfg.LogFile)
	if err != nil {
		return nil, err
	}

	renderer := logbuf.NewRenderer(logbuf.NewBuffer(), fileLog, nil, logger)
	sess := session.New(session.Options{
		AppDir:      cfg.AppDir,
		GracePeriod: cfg.Pipeline.GracePeriod,
		BatchSize:   cfg.Pipeline.BatchSize,
		ShowConsole: showConsole,
	}, store, renderer, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		fileLog:  fileLog,
		store:    store,
		renderer: renderer,
		session:  sess,
	}, nil
}

// newTaskApp is newApp plus the startup banner and a fresh tool workspace.
func newTaskApp() (*app, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	a.session.Startup(config.AppVersion)
	if err := a.session.SetupWorkspace(); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) close() {
	if err := a.session.Close(); err != nil {
		a.logger.Warn("session cleanup", "error", err)
	}
	a.renderer.Drain()
	if err := a.fileLog.Close(); err != nil {
		a.logger.Warn("close log file", "error", err)
	}
}

// runTask runs fn while the progress view (or plain log output) follows the
// session's updates.
func (a *app) runTask(ctx context.Context, title string, fn func(context.Context) error) error {
	renderCtx, stopRender := context.WithCancel(ctx)
	renderDone := make(chan struct{})
	go func() {
		a.renderer.Run(renderCtx, a.cfg.Pipeline.LogInterval)
		close(renderDone)
	}()
	defer func() {
		stopRender()
		<-renderDone
	}()

	if noTUI {
		a.renderer.SetDisplay(logbuf.WriterDisplay{W: os.Stdout})
		stop := make(chan struct{})
		forwarded := make(chan struct{})
		go func() {
			defer close(forwarded)
			for {
				select {
				case u := <-a.session.Updates():
					a.logger.Debug("progress", "percent", u.Percent, "status", u.Status)
				case <-stop:
					return
				}
			}
		}()
		err := fn(ctx)
		close(stop)
		<-forwarded
		return err
	}

	// Closing the view with ctrl+c cancels the task.
	taskCtx, cancelTask := context.WithCancel(ctx)
	defer cancelTask()

	updates := make(chan tui.Progress, 64)
	program := tea.NewProgram(tui.NewModel(title, updates), tea.WithContext(ctx), tea.WithoutSignalHandler())
	a.renderer.SetDisplay(logbuf.DisplayFunc(func(lines []string) {
		program.Send(tui.LogLines(lines))
	}))
	defer a.renderer.SetDisplay(nil)

	uiDone := make(chan struct{})
	go func() {
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			a.logger.Debug("progress view stopped", "error", err)
		}
		cancelTask()
		close(uiDone)
	}()

	stop := make(chan struct{})
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		defer close(updates)
		for {
			select {
			case u := <-a.session.Updates():
				select {
				case updates <- tui.Progress{Percent: u.Percent, Status: u.Status}:
				case <-stop:
					return
				}
			case <-stop:
				return
			}
		}
	}()

	err := fn(taskCtx)
	a.renderer.Drain()
	close(stop)
	<-forwarded
	<-uiDone
	return err
}
