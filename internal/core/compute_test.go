package core

import "testing"

func TestGrandTotal(t *testing.T) {
	if got := GrandTotal(nil).Cents; got != 0 {
		t.Fatalf("empty list total = %d, want 0", got)
	}

	// Rice 5.00 x2 + Beans 4.50 x3 = 23.50
	items := []Item{
		{ID: "a", Product: "Rice", PriceCents: 500, Quantity: 2},
		{ID: "b", Product: "Beans", PriceCents: 450, Quantity: 3},
	}
	if got := GrandTotal(items).Cents; got != 2350 {
		t.Fatalf("total = %d, want 2350", got)
	}
}

func TestBalance(t *testing.T) {
	items := []Item{
		{ID: "a", Product: "Rice", PriceCents: 500, Quantity: 2},
		{ID: "b", Product: "Beans", PriceCents: 450, Quantity: 3},
	}
	// budget 30.00 - 23.50 = 6.50
	if got := Balance(3000, items).Cents; got != 650 {
		t.Fatalf("balance = %d, want 650", got)
	}
	if got := Balance(2000, items).Cents; got != -350 {
		t.Fatalf("balance = %d, want -350", got)
	}
}

func TestHasBudget(t *testing.T) {
	if HasBudget(0) {
		t.Fatal("zero budget must mean unset")
	}
	if !HasBudget(1) {
		t.Fatal("positive budget must mean set")
	}
}

func TestSubtotal(t *testing.T) {
	it := Item{ID: "a", Product: "Rice", PriceCents: 500, Quantity: 5}
	if got := it.Subtotal().Cents; got != 2500 {
		t.Fatalf("subtotal = %d, want 2500", got)
	}
}
