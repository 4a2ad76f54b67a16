package http

import (
	"bytes"
	"fmt"
	"net/http"

	"lista/internal/core"
)

// itemRow is one rendered table row.
type itemRow struct {
	ID       string
	Product  string
	Price    string
	Quantity int64
	Subtotal string
	Editing  bool
}

// listView feeds the list section partial: the item form, the table and
// the totals footer. It is rebuilt from the session snapshot on every
// request so the rendered page always matches the authoritative state.
type listView struct {
	Rows       []itemRow
	Empty      bool
	GrandTotal string

	HasBudget   bool
	Budget      string
	BudgetInput string
	Balance     string
	Overspent   bool

	Editing      bool
	EditingID    string
	FormProduct  string
	FormPrice    string
	FormQuantity string
	SubmitLabel  string
}

// indexView wraps listView with page-level state for the full render.
type indexView struct {
	listView
	LoadWarning string
}

// buildListView projects the current session state into template data.
func (s *Server) buildListView() listView {
	snap := s.svc.Snapshot()
	editing, isEditing := s.svc.Editing()

	view := listView{
		Rows:        make([]itemRow, 0, len(snap.Items)),
		Empty:       len(snap.Items) == 0,
		GrandTotal:  core.FormatEuros(core.GrandTotal(snap.Items).Cents),
		HasBudget:   core.HasBudget(snap.BudgetCents),
		SubmitLabel: "Aggiungi",
	}

	for _, it := range snap.Items {
		view.Rows = append(view.Rows, itemRow{
			ID:       it.ID,
			Product:  it.Product,
			Price:    core.FormatEuros(it.PriceCents),
			Quantity: it.Quantity,
			Subtotal: core.FormatEuros(it.Subtotal().Cents),
			Editing:  isEditing && it.ID == editing.ID,
		})
	}

	if view.HasBudget {
		view.Budget = core.FormatEuros(snap.BudgetCents)
		view.BudgetInput = formatDecimalInput(snap.BudgetCents)
		balance := core.Balance(snap.BudgetCents, snap.Items)
		view.Balance = core.FormatEuros(balance.Cents)
		view.Overspent = balance.Cents < 0
	} else {
		// Unset budget renders as a placeholder, not as zero.
		view.Budget = "–"
	}

	if isEditing {
		view.Editing = true
		view.EditingID = editing.ID
		view.FormProduct = editing.Product
		view.FormPrice = formatDecimalInput(editing.PriceCents)
		view.FormQuantity = fmt.Sprintf("%d", editing.Quantity)
		view.SubmitLabel = "Aggiorna"
	}

	return view
}

// renderListSection writes the list section partial into the builder body.
func (s *Server) renderListSection(r *http.Request, b *HTMXResponseBuilder) *HTMXResponseBuilder {
	return s.renderTemplate(r, b, "list_section", s.buildListView())
}

func (s *Server) renderTemplate(r *http.Request, b *HTMXResponseBuilder, name string, data any) *HTMXResponseBuilder {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template render failed", "template", name, "error", err)
		return InternalServerError("Errore di rendering")
	}
	b.headers["Content-Type"] = "text/html; charset=utf-8"
	b.body = buf.Bytes()
	return b
}

// formatDecimalInput renders cents as a plain "12.34" value suitable for
// a numeric form input.
func formatDecimalInput(cents int64) string {
	neg := ""
	if cents < 0 {
		neg = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", neg, cents/100, cents%100)
}
