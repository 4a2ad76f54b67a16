package core

import (
	"math"
	"testing"
)

func TestItemValidate(t *testing.T) {
	good := Item{ID: NewItemID(), Product: "Rice", PriceCents: 500, Quantity: 2}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Item{
		{ID: "", Product: "Rice", PriceCents: 500, Quantity: 2},
		{ID: "x", Product: "", PriceCents: 500, Quantity: 2},
		{ID: "x", Product: "   ", PriceCents: 500, Quantity: 2},
		{ID: "x", Product: "Rice", PriceCents: 0, Quantity: 2},
		{ID: "x", Product: "Rice", PriceCents: -100, Quantity: 2},
		{ID: "x", Product: "Rice", PriceCents: 500, Quantity: 0},
		{ID: "x", Product: "Rice", PriceCents: 500, Quantity: -1},
		{ID: "x", Product: "Rice", PriceCents: 2, Quantity: math.MaxInt64},
	}
	for i, it := range bads {
		if err := it.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestValidateFields(t *testing.T) {
	cases := []struct {
		product  string
		price    int64
		quantity int64
		ok       bool
	}{
		{"Rice", 500, 2, true},
		{"", 500, 2, false},
		{"Rice", 0, 2, false},
		{"Rice", 500, 0, false},
		{"", 0, 0, false},
		{"Rice", 2, math.MaxInt64, false},
		{"Rice", 1, math.MaxInt64, true}, // largest subtotal that still fits
	}
	for i, tc := range cases {
		err := ValidateFields(tc.product, tc.price, tc.quantity)
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestNewItemIDUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 1000; i++ {
		id := NewItemID()
		if id == "" {
			t.Fatal("empty id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}
