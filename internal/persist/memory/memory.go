// Package memory is the non-durable persistence adapter, used for local
// development and tests.
package memory

import (
	"context"
	"sync"

	"lista/internal/core"
)

type Store struct {
	mu   sync.Mutex
	snap core.Snapshot
}

func New() *Store {
	return &Store{}
}

// Seed returns a store pre-populated with a snapshot, handy in tests.
func Seed(snap core.Snapshot) *Store {
	s := New()
	_ = s.Save(context.Background(), snap)
	return s
}

func (s *Store) Load(_ context.Context) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]core.Item, len(s.snap.Items))
	copy(items, s.snap.Items)
	return core.Snapshot{Items: items, BudgetCents: s.snap.BudgetCents}, nil
}

func (s *Store) Save(_ context.Context, snap core.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]core.Item, len(snap.Items))
	copy(items, snap.Items)
	s.snap = core.Snapshot{Items: items, BudgetCents: snap.BudgetCents}
	return nil
}
