package store

import (
	"context"
	"sync"

	"tableflip.dev/devo/pkg/entry"
)

// Memory keeps the encoded collection in process memory. Nothing survives
// a restart.
type Memory struct {
	mu   sync.Mutex
	data []byte
	// FailSave makes every Save return this error when set.
	FailSave error
}

// NewMemory returns an empty in-memory store, optionally seeded.
func NewMemory(seed ...*entry.Entry) *Memory {
	m := &Memory{}
	if len(seed) > 0 {
		m.data, _ = encode(seed)
	}
	return m
}

func (m *Memory) Load(_ context.Context) ([]*entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return decode(m.data)
}

func (m *Memory) Save(_ context.Context, entries []*entry.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	data, err := encode(entries)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

func (m *Memory) Watch(_ context.Context) (<-chan Event, error) {
	return closedEvents(), nil
}

func (m *Memory) Close() error { return nil }
