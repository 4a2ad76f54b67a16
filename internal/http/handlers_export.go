package http

import (
	"fmt"
	"net/http"
	"time"

	"lista/internal/export"
)

// handleExportCSV streams the current list as a CSV document download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	snap := s.svc.Snapshot()
	filename := fmt.Sprintf("lista-%s.csv", time.Now().Format("2006-01-02"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := export.WriteCSV(w, snap); err != nil {
		s.logger.ErrorContext(r.Context(), "CSV export failed", "error", err)
	}
}

// handleExportSheets queues an export of the current list to the
// configured spreadsheet. The actual write happens in the worker.
func (s *Server) handleExportSheets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	if err := s.svc.RequestExport(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "Sheets export request failed", "error", err)
		s.renderListSection(r, NewHTMXResponse().
			Status(http.StatusServiceUnavailable).
			TriggerErrorNotification("Esportazione non disponibile")).
			Write(w)
		return
	}

	s.renderListSection(r, NewHTMXResponse().
		TriggerSuccessNotification("Esportazione avviata")).
		Write(w)
}
