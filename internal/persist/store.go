// Package persist implements the minimal persistence surface spec.md's
// Non-goals leave in scope: reloading a relative schedule's lastFinished
// value across a restart, and nothing more (no trigger state, no
// requirement state, no full activity persistence).
package persist

import (
	"context"
	"fmt"
	"sync"

	"github.com/malbeclabs/activity-scheduler/internal/schedule"
)

// Store is the persistence boundary a relative IntervalPolicy's
// lastFinished value crosses. A real deployment would back this with a
// datastore; this module only needs the interface and an in-memory
// implementation to exercise it.
type Store interface {
	LoadLastFinished(ctx context.Context, scheduleID string) (int64, error)
	SaveLastFinished(ctx context.Context, scheduleID string, finished int64) error
}

// MemoryStore is an in-memory Store, safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	finished map[string]int64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{finished: make(map[string]int64)}
}

// LoadLastFinished returns schedule.Never if scheduleID has never been
// saved.
func (m *MemoryStore) LoadLastFinished(_ context.Context, scheduleID string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.finished[scheduleID]
	if !ok {
		return schedule.Never, nil
	}
	return v, nil
}

// SaveLastFinished records finished for scheduleID.
func (m *MemoryStore) SaveLastFinished(_ context.Context, scheduleID string, finished int64) error {
	if scheduleID == "" {
		return fmt.Errorf("persist: SaveLastFinished: empty scheduleID")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished[scheduleID] = finished
	return nil
}
