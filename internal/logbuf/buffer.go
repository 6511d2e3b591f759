package logbuf

import "sync"

// Buffer is a FIFO of raw, unformatted log messages. Append is safe from any
// goroutine at any rate.
type Buffer struct {
	mu   sync.Mutex
	msgs []string
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Append(msgs ...string) {
	if len(msgs) == 0 {
		return
	}
	b.mu.Lock()
	b.msgs = append(b.msgs, msgs...)
	b.mu.Unlock()
}

// Drain removes and returns everything currently buffered.
func (b *Buffer) Drain() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.msgs) == 0 {
		return nil
	}
	out := b.msgs
	b.msgs = nil
	return out
}

func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.msgs)
}

func (b *Buffer) Clear() {
	b.mu.Lock()
	b.msgs = nil
	b.mu.Unlock()
}
