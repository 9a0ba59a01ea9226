// Package store keeps the entries parsed by the server, grouped in batches,
// one batch per accepted request.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/etnz/fxql"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a batch does not exist.
var ErrNotFound = errors.New("batch not found")

// Batch is a set of entries saved together.
type Batch struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Entries   []fxql.Entry
}

// Memory is an in-memory store, safe for concurrent use.
// Its zero value is ready to use and never forgets a batch.
type Memory struct {
	mu      sync.RWMutex
	max     int         // largest number of batches kept, 0 for no limit
	order   []uuid.UUID // batch ids, oldest first
	batches map[uuid.UUID]Batch
}

// NewMemory returns an empty in-memory store without limit.
func NewMemory() *Memory { return &Memory{} }

// NewBoundedMemory returns an empty in-memory store keeping at most max
// batches: saving more evicts the oldest ones. A max lower than 1 disables
// the limit.
func NewBoundedMemory(max int) *Memory { return &Memory{max: max} }

// Save records entries as a new batch.
func (m *Memory) Save(_ context.Context, entries []fxql.Entry) (Batch, error) {
	b := Batch{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Entries:   append([]fxql.Entry(nil), entries...),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.batches == nil {
		m.batches = make(map[uuid.UUID]Batch)
	}
	m.batches[b.ID] = b
	m.order = append(m.order, b.ID)
	for m.max > 0 && len(m.order) > m.max {
		delete(m.batches, m.order[0])
		m.order = m.order[1:]
	}
	return b, nil
}

// Load returns the batch with the given id.
func (m *Memory) Load(_ context.Context, id uuid.UUID) (Batch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.batches[id]
	if !ok {
		return Batch{}, ErrNotFound
	}
	b.Entries = append([]fxql.Entry(nil), b.Entries...)
	return b, nil
}
