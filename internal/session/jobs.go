package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"texturetool/internal/pipeline"
	"texturetool/internal/settings"
)

type DecompileRequest struct {
	Input  string // .xbt archive
	Output string // destination folder
}

type CompileRequest struct {
	Input     string // source folder
	Output    string // .xbt archive
	DupeCheck bool
}

// jobHooks receives the events of one job on the consuming goroutine.
type jobHooks struct {
	silent   bool
	progress func(pipeline.Progress)
	lines    func([]pipeline.OutputLine)
}

// runJob starts job and consumes its events until the channel closes. Every
// stdout line is queued for the log unless the job is silent.
func (s *Session) runJob(ctx context.Context, job pipeline.Job, hooks jobHooks) error {
	job.ShowConsole = s.opts.ShowConsole
	sup := pipeline.NewSupervisor(job,
		pipeline.WithGracePeriod(s.opts.GracePeriod),
		pipeline.WithBatchSize(s.opts.BatchSize),
		pipeline.WithLogger(s.logger),
	)

	s.mu.Lock()
	s.current = sup
	s.mu.Unlock()

	var result error
	for ev := range sup.Start(ctx) {
		switch ev.Kind {
		case pipeline.EventProgress:
			if hooks.progress != nil {
				hooks.progress(ev.Progress)
			}
		case pipeline.EventLines:
			if !hooks.silent {
				for _, line := range ev.Lines {
					s.renderer.Append(line.LogText())
				}
			}
			if hooks.lines != nil {
				hooks.lines(ev.Lines)
			}
		case pipeline.EventFinished:
			result = nil
		case pipeline.EventError:
			result = ev.Err
		}
	}
	return result
}

func (s *Session) logCommand(args []string) {
	s.renderer.Logf("[DATA] %s: Running command: %s", s.opts.Now().Format("15:04:05"), commandLine(args))
}

// Decompile extracts every texture of req.Input into req.Output.
func (s *Session) Decompile(ctx context.Context, req DecompileRequest) error {
	release, err := s.acquire("decompile")
	if err != nil {
		return err
	}
	defer release()

	exe, dir := s.toolCommand(Extractor)
	output, input := filepath.Clean(req.Output), filepath.Clean(req.Input)
	args := []string{exe, "-o", output, "-c", input}

	s.renderer.Log("[INFO] ----- Decompilation Start -----")
	s.Publish(Update{Percent: 0, Status: "Decompile in progress... Please wait"})
	s.logCommand(args)

	job := pipeline.NewJob("decompile", args...)
	job.Dir = dir
	err = s.runJob(ctx, job, jobHooks{progress: func(p pipeline.Progress) {
		s.Publish(Update{Percent: p.Percent, Status: taskStatus("Decompiling", p.Message)})
	}})
	if err != nil {
		s.finishFailed("decompile", err)
		return err
	}

	s.finishOK("decompile")
	s.remember(settings.DecompileFiles, input, settings.DecompileInput, filepath.Dir(input))
	s.remember(settings.DecompileFolders, output, settings.DecompileOutput, output)
	return nil
}

// Compile packs req.Input into req.Output. The output file is created before
// the compiler runs.
func (s *Session) Compile(ctx context.Context, req CompileRequest) error {
	release, err := s.acquire("compile")
	if err != nil {
		return err
	}
	defer release()

	s.renderer.Log("[INFO] ----- Compilation Start -----")

	input, output := filepath.Clean(req.Input), filepath.Clean(req.Output)
	f, err := os.Create(output)
	if err != nil {
		s.renderer.Logf("[ERROR] Could not create output file: %v", err)
		return fmt.Errorf("create output: %w", err)
	}
	f.Close()

	exe, dir := s.toolCommand(Compiler)
	args := []string{exe}
	if req.DupeCheck {
		args = append(args, "-dupecheck")
	}
	args = append(args, "-input", input, "-output", output)

	s.Publish(Update{Percent: 0, Status: "Compile in progress... Please wait"})
	s.logCommand(args)

	job := pipeline.NewJob("compile", args...)
	job.Dir = dir
	err = s.runJob(ctx, job, jobHooks{progress: func(p pipeline.Progress) {
		s.Publish(Update{Percent: p.Percent, Status: taskStatus("Compiling", p.Message)})
	}})
	if err != nil {
		s.finishFailed("compile", err)
		return err
	}

	s.finishOK("compile")
	s.remember(settings.CompileFolders, input, settings.CompileInput, input)
	s.remember(settings.CompileFiles, output, settings.CompileOutput, filepath.Dir(output))
	return nil
}

func (s *Session) finishOK(task string) {
	title := strings.ToUpper(task[:1]) + task[1:]
	s.Publish(Update{Percent: 100, Status: title + " process complete"})
	s.renderer.Logf("[INFO] ----- %s Complete -----", title)
}

func (s *Session) finishFailed(task string, err error) {
	s.Publish(Update{Percent: 100, Status: fmt.Sprintf("Error during %s (Code: %d)", task, exitCode(err))})
	s.renderer.Logf("[ERROR] %v", err)
}

func (s *Session) remember(g settings.RecentGroup, recent string, key settings.PathKey, path string) {
	if s.store == nil {
		return
	}
	if err := s.store.AddRecent(g, recent); err != nil {
		s.logger.Warn("save recent", "group", g, "error", err)
	}
	if err := s.store.SetPath(key, path); err != nil {
		s.logger.Warn("save path", "key", key, "error", err)
	}
}

// exitCode is the child's exit status, or -1 when it never ran to exit.
func exitCode(err error) int {
	var exitErr *pipeline.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return -1
}
