package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultGracePeriod = 2 * time.Second
	defaultEventBuffer = 64
)

// Job describes one child invocation. Args[0] is the executable.
type Job struct {
	ID          string
	Name        string
	Args        []string
	Dir         string
	Env         []string
	ShowConsole bool
}

func NewJob(name string, args ...string) Job {
	return Job{ID: uuid.New().String(), Name: name, Args: args}
}

type Option func(*Supervisor)

func WithGracePeriod(d time.Duration) Option {
	return func(s *Supervisor) {
		if d > 0 {
			s.grace = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(s *Supervisor) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

func WithEventBuffer(n int) Option {
	return func(s *Supervisor) {
		if n >= 0 {
			s.bufSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Supervisor) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Supervisor runs a single Job and reports everything it observes as events.
// The consumer must drain the channel until it is closed.
type Supervisor struct {
	job       Job
	grace     time.Duration
	batchSize int
	bufSize   int
	logger    *slog.Logger
	parser    *Parser

	state   atomic.Int32
	streams atomic.Int32
	events  chan Event

	mu       sync.Mutex
	cmd      *exec.Cmd
	stderr   []string
	panicErr error
}

func NewSupervisor(job Job, opts ...Option) *Supervisor {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	s := &Supervisor{
		job:       job,
		grace:     DefaultGracePeriod,
		batchSize: DefaultBatchSize,
		bufSize:   defaultEventBuffer,
		logger:    slog.Default(),
		parser:    NewParser(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("job", job.Name, "job_id", job.ID)
	return s
}

func (s *Supervisor) Job() Job {
	return s.job
}

func (s *Supervisor) State() State {
	return State(s.state.Load())
}

// Start spawns the child and returns immediately. Spawn failures arrive as an
// EventError wrapping a *StartError.
func (s *Supervisor) Start(ctx context.Context) <-chan Event {
	events := make(chan Event, s.bufSize)
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateStarting)) {
		events <- Event{Kind: EventError, JobID: s.job.ID, Err: ErrAlreadyStarted}
		close(events)
		return events
	}
	s.events = events

	go s.run(ctx)
	return events
}

// Kill force-kills a running child. It is a no-op once the job is finished.
func (s *Supervisor) Kill() error {
	s.mu.Lock()
	cmd := s.cmd
	s.mu.Unlock()

	if cmd == nil || cmd.Process == nil || s.State().Terminal() {
		return nil
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func (s *Supervisor) run(ctx context.Context) {
	defer close(s.events)
	defer func() {
		if r := recover(); r != nil {
			s.fail(fmt.Errorf("supervisor %s: %v", s.job.Name, r))
		}
	}()

	cmd, stdout, stderr, err := s.spawn(ctx)
	if err != nil {
		s.fail(&StartError{Err: err})
		return
	}
	s.state.Store(int32(StateRunning))
	s.logger.Debug("process started", "pid", cmd.Process.Pid, "args", s.job.Args, "dir", s.job.Dir)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.guard("stdout", func() { s.readStdout(stdout) })
	}()
	go func() {
		defer wg.Done()
		s.guard("stderr", func() { s.readStderr(stderr) })
	}()
	wg.Wait()

	s.finalize(cmd)
}

func (s *Supervisor) spawn(ctx context.Context) (*exec.Cmd, io.ReadCloser, io.ReadCloser, error) {
	if len(s.job.Args) == 0 || s.job.Args[0] == "" {
		return nil, nil, nil, ErrNoCommand
	}

	cmd := exec.CommandContext(ctx, s.job.Args[0], s.job.Args[1:]...)
	cmd.Dir = s.job.Dir
	if len(s.job.Env) > 0 {
		cmd.Env = append(os.Environ(), s.job.Env...)
	}
	configureSysProc(cmd, s.job.ShowConsole)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, nil, err
	}

	s.mu.Lock()
	s.cmd = cmd
	s.mu.Unlock()
	return cmd, stdout, stderr, nil
}

func (s *Supervisor) readStdout(r io.Reader) {
	defer s.streamDone("stdout")

	lr := NewLineReader(r)
	Batch(lr.All(), s.batchSize, func(batch []string) {
		lines := make([]OutputLine, 0, len(batch))
		for _, raw := range batch {
			line, surfaced := s.parser.Parse(raw)
			if surfaced {
				s.emit(Event{Kind: EventProgress, Progress: Progress{Percent: line.Percent, Message: line.Message}})
			}
			lines = append(lines, line)
		}
		s.emit(Event{Kind: EventLines, Lines: lines})
	})
	if err := lr.Err(); err != nil {
		s.logger.Debug("stdout read ended", "error", err)
	}
}

func (s *Supervisor) readStderr(r io.Reader) {
	defer s.streamDone("stderr")

	lr := NewLineReader(r)
	Batch(lr.All(), s.batchSize, func(batch []string) {
		s.mu.Lock()
		s.stderr = append(s.stderr, batch...)
		s.mu.Unlock()
	})
	if err := lr.Err(); err != nil {
		s.logger.Debug("stderr read ended", "error", err)
	}
}

func (s *Supervisor) streamDone(name string) {
	if s.streams.Add(1) == 1 {
		s.state.CompareAndSwap(int32(StateRunning), int32(StateDraining))
	}
	s.logger.Debug("stream closed", "stream", name)
}

// finalize runs once both streams have closed.
func (s *Supervisor) finalize(cmd *exec.Cmd) {
	s.state.Store(int32(StateFinalizing))

	waitErr := s.waitWithGrace(cmd)

	s.mu.Lock()
	stderr := strings.Join(s.stderr, "\n")
	panicErr := s.panicErr
	s.mu.Unlock()

	if panicErr != nil {
		s.fail(panicErr)
		return
	}

	code := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			s.fail(fmt.Errorf("wait for %s: %w", s.job.Name, waitErr))
			return
		}
		code = exitErr.ExitCode()
	}
	if code != 0 {
		s.fail(&ExitError{Code: code, Stderr: stderr})
		return
	}

	s.state.Store(int32(StateFinished))
	s.logger.Debug("process finished")
	s.emit(Event{Kind: EventFinished, ExitCode: 0, Stderr: stderr})
}

func (s *Supervisor) waitWithGrace(cmd *exec.Cmd) error {
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(s.grace)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		s.logger.Warn("process did not exit after output closed, killing", "grace", s.grace)
		if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			s.logger.Warn("kill failed", "error", err)
		}
		return <-done
	}
}

func (s *Supervisor) guard(stream string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			if s.panicErr == nil {
				s.panicErr = fmt.Errorf("%s reader for %s: %v", stream, s.job.Name, r)
			}
			s.mu.Unlock()
		}
	}()
	fn()
}

func (s *Supervisor) fail(err error) {
	s.state.Store(int32(StateFailed))
	s.logger.Debug("process failed", "error", err)
	s.emit(Event{Kind: EventError, Err: err})
}

func (s *Supervisor) emit(ev Event) {
	ev.JobID = s.job.ID
	s.events <- ev
}
