package logbuf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const DefaultLogName = "TextureTool_Log.txt"

// FileLogger keeps the log file open. It is truncated when opened and
// appended to afterwards.
type FileLogger struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

func OpenFileLogger(path string) (*FileLogger, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	l := &FileLogger{path: abs}
	if err := l.Reset(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *FileLogger) Path() string {
	return l.path
}

func (l *FileLogger) WriteLines(lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("reopen log file: %w", err)
		}
		l.f = f
	}

	_, err := l.f.WriteString(strings.Join(lines, "\n") + "\n")
	return err
}

// Reset truncates the file and keeps it open for appending.
func (l *FileLogger) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closeLocked()
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	l.f = f
	return nil
}

func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closeLocked()
}

func (l *FileLogger) closeLocked() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}
