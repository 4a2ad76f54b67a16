// Package list holds the in-memory session state: the ordered item
// sequence, the budget and the editing marker. It is the single source of
// truth during a session; the persistence adapter only mirrors it.
package list

import (
	"sync"

	"lista/internal/core"
)

// Store serializes all mutations behind one mutex so the session-state
// invariants hold even when handlers run on multiple goroutines.
type Store struct {
	mu        sync.Mutex
	items     []core.Item
	budget    int64 // cents, 0 = unset
	editingID string
}

func New() *Store {
	return &Store{}
}

// Hydrate replaces the whole state from a persisted snapshot. Items that
// violate the model invariants are dropped as corrupted; the number of
// dropped entries is returned so the caller can warn and re-persist.
func (s *Store) Hydrate(snap core.Snapshot) (dropped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = s.items[:0]
	seen := map[string]struct{}{}
	for _, it := range snap.Items {
		if err := it.Validate(); err != nil {
			dropped++
			continue
		}
		if _, dup := seen[it.ID]; dup {
			dropped++
			continue
		}
		seen[it.ID] = struct{}{}
		s.items = append(s.items, it)
	}
	if snap.BudgetCents > 0 {
		s.budget = snap.BudgetCents
	} else {
		s.budget = 0
	}
	s.editingID = ""
	return dropped
}

// Snapshot returns a deep copy of the persistable state.
func (s *Store) Snapshot() core.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]core.Item, len(s.items))
	copy(items, s.items)
	return core.Snapshot{Items: items, BudgetCents: s.budget}
}

// AddItem appends a new item with a fresh unique id. Fields must already be
// validated by the caller.
func (s *Store) AddItem(product string, priceCents, quantity int64) core.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := core.Item{
		ID:         core.NewItemID(),
		Product:    product,
		PriceCents: priceCents,
		Quantity:   quantity,
	}
	s.items = append(s.items, it)
	return it
}

// UpdateItem replaces the fields of the matching item in place, preserving
// its id and position. Unknown ids are a no-op.
func (s *Store) UpdateItem(id, product string, priceCents, quantity int64) (core.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Product = product
			s.items[i].PriceCents = priceCents
			s.items[i].Quantity = quantity
			return s.items[i], true
		}
	}
	return core.Item{}, false
}

// RemoveItem deletes the matching item; the sequence closes over the gap.
// If the removed item was being edited the marker is cleared, so a delete
// can never leave a stale edit reference.
func (s *Store) RemoveItem(id string) (removed, wasEditing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			if s.editingID == id {
				s.editingID = ""
				wasEditing = true
			}
			return true, wasEditing
		}
	}
	return false, false
}

// SetBudget replaces the budget unconditionally. The caller coerces the
// value; zero means "unset".
func (s *Store) SetBudget(cents int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budget = cents
}

func (s *Store) Budget() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budget
}

// BeginEdit marks the item as being edited and returns it for form
// population. An unknown id leaves the marker unset.
func (s *Store) BeginEdit(id string) (core.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			s.editingID = id
			return it, true
		}
	}
	return core.Item{}, false
}

// Editing returns the item currently loaded into the edit form, if any.
func (s *Store) Editing() (core.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editingID == "" {
		return core.Item{}, false
	}
	for _, it := range s.items {
		if it.ID == s.editingID {
			return it, true
		}
	}
	// Marker points at a vanished item; treat as not editing.
	s.editingID = ""
	return core.Item{}, false
}

// ClearEdit resets the editing marker after a commit or an abandoned edit.
func (s *Store) ClearEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = ""
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
