package core

// Pure derivations over the session state. These are recomputed from the
// current snapshot after every mutation; nothing here caches.

// GrandTotal sums the subtotals of all items. The sum over an empty
// sequence is zero.
func GrandTotal(items []Item) Money {
	var total int64
	for _, it := range items {
		total += it.Subtotal().Cents
	}
	return Money{Cents: total}
}

// Balance returns budget minus grand total. It is meaningful only when a
// budget is configured; callers must check HasBudget before displaying it.
func Balance(budgetCents int64, items []Item) Money {
	return Money{Cents: budgetCents - GrandTotal(items).Cents}
}

// HasBudget reports whether a budget is configured. Zero means "unset" and
// suppresses the balance display.
func HasBudget(budgetCents int64) bool {
	return budgetCents > 0
}
