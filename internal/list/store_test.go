package list

import (
	"testing"

	"lista/internal/core"
)

func TestAddItem(t *testing.T) {
	s := New()
	it := s.AddItem("Rice", 500, 2)
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	if it.ID == "" {
		t.Fatal("expected generated id")
	}
	if it.Subtotal().Cents != 1000 {
		t.Fatalf("subtotal = %d, want 1000", it.Subtotal().Cents)
	}
}

func TestUpdateItemPreservesIDAndPosition(t *testing.T) {
	s := New()
	rice := s.AddItem("Rice", 500, 2)
	s.AddItem("Beans", 450, 3)

	got, ok := s.UpdateItem(rice.ID, "Rice", 500, 5)
	if !ok {
		t.Fatal("expected update to find item")
	}
	if got.ID != rice.ID {
		t.Fatalf("id changed: %s -> %s", rice.ID, got.ID)
	}

	snap := s.Snapshot()
	if len(snap.Items) != 2 {
		t.Fatalf("len = %d, want 2", len(snap.Items))
	}
	if snap.Items[0].ID != rice.ID || snap.Items[0].Quantity != 5 {
		t.Fatalf("first item not the updated rice: %+v", snap.Items[0])
	}
	if total := core.GrandTotal(snap.Items).Cents; total != 3850 {
		t.Fatalf("total = %d, want 3850", total)
	}
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	s := New()
	s.AddItem("Rice", 500, 2)
	if _, ok := s.UpdateItem("missing", "X", 100, 1); ok {
		t.Fatal("expected miss")
	}
	snap := s.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].Product != "Rice" {
		t.Fatalf("state corrupted: %+v", snap.Items)
	}
}

func TestRemoveItem(t *testing.T) {
	s := New()
	a := s.AddItem("Rice", 500, 2)
	b := s.AddItem("Beans", 450, 3)

	removed, wasEditing := s.RemoveItem(a.ID)
	if !removed || wasEditing {
		t.Fatalf("removed=%v wasEditing=%v", removed, wasEditing)
	}
	snap := s.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != b.ID {
		t.Fatalf("sequence did not close over the gap: %+v", snap.Items)
	}

	if removed, _ := s.RemoveItem("missing"); removed {
		t.Fatal("removing unknown id must be a no-op")
	}
}

func TestRemoveItemBeingEdited(t *testing.T) {
	s := New()
	a := s.AddItem("Rice", 500, 2)
	if _, ok := s.BeginEdit(a.ID); !ok {
		t.Fatal("expected begin edit to succeed")
	}

	removed, wasEditing := s.RemoveItem(a.ID)
	if !removed || !wasEditing {
		t.Fatalf("removed=%v wasEditing=%v, want true/true", removed, wasEditing)
	}
	if _, editing := s.Editing(); editing {
		t.Fatal("editing marker must be cleared after deleting the edited item")
	}
}

func TestBeginEditUnknownID(t *testing.T) {
	s := New()
	s.AddItem("Rice", 500, 2)
	if _, ok := s.BeginEdit("missing"); ok {
		t.Fatal("expected miss")
	}
	if _, editing := s.Editing(); editing {
		t.Fatal("marker must stay unset on a miss")
	}
}

func TestHydrateFiltersCorruptedItems(t *testing.T) {
	s := New()
	dropped := s.Hydrate(core.Snapshot{
		Items: []core.Item{
			{ID: "a", Product: "Rice", PriceCents: 500, Quantity: 2},
			{ID: "b", Product: "", PriceCents: 450, Quantity: 3},  // empty product
			{ID: "c", Product: "Eggs", PriceCents: 0, Quantity: 1}, // bad price
			{ID: "a", Product: "Dup", PriceCents: 100, Quantity: 1}, // duplicate id
			{ID: "d", Product: "Milk", PriceCents: 120, Quantity: -1},
		},
		BudgetCents: 3000,
	})
	if dropped != 4 {
		t.Fatalf("dropped = %d, want 4", dropped)
	}
	snap := s.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != "a" || snap.Items[0].Product != "Rice" {
		t.Fatalf("surviving items wrong: %+v", snap.Items)
	}
	if snap.BudgetCents != 3000 {
		t.Fatalf("budget = %d, want 3000", snap.BudgetCents)
	}
}

func TestSetBudget(t *testing.T) {
	s := New()
	s.SetBudget(3000)
	if s.Budget() != 3000 {
		t.Fatalf("budget = %d", s.Budget())
	}
	s.SetBudget(0)
	if s.Budget() != 0 {
		t.Fatal("budget must be replaceable with unset")
	}
}
