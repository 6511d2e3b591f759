package pipeline

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"
)

// LineReader turns a byte stream into trimmed, non-empty lines. It is single
// use: once All has been ranged over, further calls yield nothing.
type LineReader struct {
	r    *bufio.Reader
	used bool
	err  error
}

func NewLineReader(r io.Reader) *LineReader {
	lr := &LineReader{}
	if r != nil {
		lr.r = bufio.NewReader(r)
	}
	return lr
}

func (lr *LineReader) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if lr.r == nil || lr.used {
			return
		}
		lr.used = true

		for {
			line, err := lr.r.ReadString('\n')
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				if !yield(trimmed) {
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					lr.err = err
				}
				return
			}
		}
	}
}

// Err returns the read error that ended the sequence, or nil at clean EOF.
func (lr *LineReader) Err() error {
	return lr.err
}
