package docstore

import (
	"context"
	"io/fs"
	"sync"
)

// MemoryBackend holds the encoded document in memory. It is used by tests and
// by tooling that must not touch disk.
type MemoryBackend struct {
	mu     sync.Mutex
	data   []byte
	writes int
}

func NewMemoryBackend(initial []byte) *MemoryBackend {
	b := &MemoryBackend{}
	if initial != nil {
		b.data = append([]byte(nil), initial...)
	}
	return b
}

func (b *MemoryBackend) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil, fs.ErrNotExist
	}
	return append([]byte(nil), b.data...), nil
}

func (b *MemoryBackend) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte(nil), data...)
	b.writes++
	return nil
}

// Bytes returns the last written payload, or nil.
func (b *MemoryBackend) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil
	}
	return append([]byte(nil), b.data...)
}

func (b *MemoryBackend) Writes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes
}
