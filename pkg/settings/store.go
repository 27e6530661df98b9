package settings

import (
	"context"
	"fmt"
	"sync"
)

// Store persists Settings.
type Store interface {
	// Load returns the stored settings, or Defaults when nothing is stored.
	Load(ctx context.Context) (Settings, error)

	// Save validates and persists s.
	Save(ctx context.Context, s Settings) error

	// Reset removes stored settings so Load returns Defaults.
	Reset(ctx context.Context) error
}

// Update loads, applies fn and saves.
func Update(ctx context.Context, store Store, fn func(*Settings) error) (Settings, error) {
	s, err := store.Load(ctx)
	if err != nil {
		return s, err
	}
	if err := fn(&s); err != nil {
		return s, err
	}
	if err := store.Save(ctx, s); err != nil {
		return s, err
	}
	return s, nil
}

// MemoryStore keeps settings in process memory.
type MemoryStore struct {
	mu  sync.RWMutex
	cur *Settings
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (m *MemoryStore) Load(context.Context) (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cur == nil {
		return Defaults(), nil
	}
	return *m.cur, nil
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, s Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	m.mu.Lock()
	m.cur = &s
	m.mu.Unlock()
	return nil
}

// Reset implements Store.
func (m *MemoryStore) Reset(context.Context) error {
	m.mu.Lock()
	m.cur = nil
	m.mu.Unlock()
	return nil
}
