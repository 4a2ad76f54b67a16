// Package export projects the list snapshot into tabular documents: a CSV
// download and a Google Sheets push. Both are built from the same Document
// so the exported figures always match the on-screen ones.
package export

import (
	"strconv"

	"lista/internal/core"
)

// Document is the tabular form of a snapshot: header line, one row per
// item, then summary rows (grand total, and budget/balance when a budget
// is configured).
type Document struct {
	Header  []string
	Rows    [][]string
	Summary [][]string
}

func BuildDocument(snap core.Snapshot) Document {
	doc := Document{
		Header: []string{"Product", "Price", "Qty", "Subtotal"},
	}

	for _, it := range snap.Items {
		doc.Rows = append(doc.Rows, []string{
			it.Product,
			core.FormatEuros(it.PriceCents),
			strconv.FormatInt(it.Quantity, 10),
			core.FormatEuros(it.Subtotal().Cents),
		})
	}

	total := core.GrandTotal(snap.Items)
	doc.Summary = append(doc.Summary, []string{"Grand total", core.FormatEuros(total.Cents)})
	if core.HasBudget(snap.BudgetCents) {
		balance := core.Balance(snap.BudgetCents, snap.Items)
		doc.Summary = append(doc.Summary,
			[]string{"Budget", core.FormatEuros(snap.BudgetCents)},
			[]string{"Balance", core.FormatEuros(balance.Cents)})
	}

	return doc
}
