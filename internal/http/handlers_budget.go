package http

import (
	"net/http"
	"strings"

	"lista/internal/core"
)

// handleChangeBudget sets the spending budget. Anything that does not
// parse as a positive amount clears the budget back to unset; the list
// itself never changes.
func (s *Server) handleChangeBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("Formato richiesta non valido").Write(w)
		return
	}

	raw := strings.TrimSpace(r.Form.Get("budget"))
	res := s.svc.ChangeBudget(r.Context(), raw)

	b := NewHTMXResponse().TriggerBudgetChanged(res.BudgetCents)
	if core.HasBudget(res.BudgetCents) {
		b.TriggerSuccessNotification("Budget impostato a " + core.FormatEuros(res.BudgetCents))
	} else {
		b.TriggerSuccessNotification("Budget rimosso")
	}
	if res.PersistFailed {
		b.TriggerWarningNotification("Salvataggio non riuscito: le modifiche restano solo in sessione")
	}

	s.renderListSection(r, b).Write(w)
}
