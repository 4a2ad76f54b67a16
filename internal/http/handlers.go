package http

import (
	"net/http"
)

// handleIndex renders the full page. A load warning produced during
// hydration is surfaced exactly once, on the first page after startup.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET").Write(w)
		return
	}

	view := indexView{
		listView:    s.buildListView(),
		LoadWarning: s.svc.TakeLoadWarning(),
	}

	s.renderTemplate(r, NewHTMXResponse(), "index.html", view).Write(w)
}
