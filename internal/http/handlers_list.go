package http

import (
	"net/http"
	"strings"
)

// handleSubmitItem handles the single item form. In idle mode it adds a
// new item; while an item is marked for editing it updates that item in
// place. Validation failures leave the session untouched and report every
// problem in one message.
func (s *Server) handleSubmitItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.logger.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		BadRequestError("Formato richiesta non valido").Write(w)
		return
	}

	product := sanitizeInput(r.Form.Get("product"))
	price := strings.TrimSpace(r.Form.Get("price"))
	quantity := strings.TrimSpace(r.Form.Get("quantity"))

	res, err := s.svc.Submit(r.Context(), product, price, quantity)
	if err != nil {
		s.renderListSection(r, NewHTMXResponse().
			Status(http.StatusUnprocessableEntity).
			TriggerErrorNotification(err.Error())).
			Write(w)
		return
	}

	b := NewHTMXResponse().TriggerFormReset()
	if res.Updated {
		b.TriggerItemUpdated(res.Item.ID).TriggerSuccessNotification("Voce aggiornata")
	} else {
		b.TriggerItemAdded(res.Item.ID).TriggerSuccessNotification("Voce aggiunta")
	}
	if res.PersistFailed {
		b.TriggerWarningNotification("Salvataggio non riuscito: le modifiche restano solo in sessione")
	}

	s.renderListSection(r, b).Write(w)
}

// handleRequestEdit marks an item for editing and re-renders with the
// form prefilled. Requesting edit on a vanished item is a no-op render.
func (s *Server) handleRequestEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("Formato richiesta non valido").Write(w)
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	if _, ok := s.svc.RequestEdit(id); !ok {
		s.renderListSection(r, NewHTMXResponse().
			TriggerErrorNotification("Voce non trovata")).
			Write(w)
		return
	}

	s.renderListSection(r, NewHTMXResponse()).Write(w)
}

// handleCancelEdit returns the form to add mode without touching the list.
func (s *Server) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	s.svc.CancelEdit()
	s.renderListSection(r, NewHTMXResponse()).Write(w)
}

// handleDeleteItem removes an item. Deleting the item currently being
// edited also resets the form to add mode.
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		MethodNotAllowedError("POST, DELETE").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("Formato richiesta non valido").Write(w)
		return
	}

	id := strings.TrimSpace(r.Form.Get("id"))
	res := s.svc.RequestDelete(r.Context(), id)

	b := NewHTMXResponse()
	if res.Removed {
		b.TriggerItemRemoved(id).TriggerSuccessNotification("Voce eliminata")
		if res.WasEditing {
			b.TriggerFormReset()
		}
		if res.PersistFailed {
			b.TriggerWarningNotification("Salvataggio non riuscito: le modifiche restano solo in sessione")
		}
	}

	s.renderListSection(r, b).Write(w)
}
