package logbuf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const DefaultInterval = 10 * time.Millisecond

// Sink receives the persisted form of one drain in a single call.
type Sink interface {
	WriteLines(lines []string) error
}

// Display receives the display form of one drain in a single call.
type Display interface {
	Show(lines []string)
}

type DisplayFunc func(lines []string)

func (f DisplayFunc) Show(lines []string) { f(lines) }

// WriterDisplay prints each drain to w.
type WriterDisplay struct {
	W io.Writer
}

func (d WriterDisplay) Show(lines []string) {
	fmt.Fprintln(d.W, strings.Join(lines, "\n"))
}

// Renderer drains a Buffer into a Sink and a Display. Drains are serialized,
// so output order always matches append order.
type Renderer struct {
	buf       *Buffer
	formatter Formatter
	sink      Sink
	display   Display
	logger    *slog.Logger

	mu sync.Mutex
}

func NewRenderer(buf *Buffer, sink Sink, display Display, logger *slog.Logger) *Renderer {
	if buf == nil {
		buf = NewBuffer()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		buf:       buf,
		formatter: NewFormatter(),
		sink:      sink,
		display:   display,
		logger:    logger,
	}
}

func (r *Renderer) SetFormatter(f Formatter) {
	r.mu.Lock()
	r.formatter = f
	r.mu.Unlock()
}

func (r *Renderer) SetDisplay(d Display) {
	r.mu.Lock()
	r.display = d
	r.mu.Unlock()
}

func (r *Renderer) Buffer() *Buffer {
	return r.buf
}

// Append queues msgs for the next drain.
func (r *Renderer) Append(msgs ...string) {
	r.buf.Append(msgs...)
}

// Log queues msg and drains immediately.
func (r *Renderer) Log(msg string) {
	r.buf.Append(msg)
	r.Drain()
}

func (r *Renderer) Logf(format string, args ...any) {
	r.Log(fmt.Sprintf(format, args...))
}

// Drain formats everything buffered exactly once and returns how many
// messages were rendered.
func (r *Renderer) Drain() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := r.buf.Drain()
	if len(msgs) == 0 {
		return 0
	}

	display := make([]string, 0, len(msgs))
	persisted := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		entry := r.formatter.Format(msg)
		display = append(display, entry.Display)
		persisted = append(persisted, entry.Persisted)
	}

	if r.sink != nil {
		if err := r.sink.WriteLines(persisted); err != nil {
			r.logger.Warn("write log file", "error", err, "lines", len(persisted))
		}
	}
	if r.display != nil {
		r.display.Show(display)
	}
	return len(msgs)
}

// Run drains on every tick until ctx is done, then drains once more.
func (r *Renderer) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Drain()
			return
		case <-ticker.C:
			r.Drain()
		}
	}
}
