package memory

import (
	"context"
	"testing"

	"lista/internal/core"
)

func TestRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	empty, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(empty.Items) != 0 || empty.BudgetCents != 0 {
		t.Fatalf("fresh store not empty: %+v", empty)
	}

	in := core.Snapshot{
		Items: []core.Item{
			{ID: "a", Product: "Rice", PriceCents: 500, Quantity: 2},
			{ID: "b", Product: "Beans", PriceCents: 450, Quantity: 3},
		},
		BudgetCents: 3000,
	}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.BudgetCents != 3000 || len(out.Items) != 2 {
		t.Fatalf("round trip lost data: %+v", out)
	}
	for i := range in.Items {
		if out.Items[i] != in.Items[i] {
			t.Fatalf("item %d: got %+v, want %+v", i, out.Items[i], in.Items[i])
		}
	}

	// Mutating the loaded copy must not leak back into the store.
	out.Items[0].Product = "changed"
	again, _ := s.Load(ctx)
	if again.Items[0].Product != "Rice" {
		t.Fatal("store leaked its internal slice")
	}
}
