// Package http serves the single-page shopping list UI and its HTMX
// endpoints. Every mutation re-renders the list section partial and
// carries a show-notification trigger for the client to display.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"sync"

	applog "lista/internal/log"
	"lista/internal/middleware/ratelimit"
	"lista/internal/middleware/security"
	"lista/internal/middleware/trace"
	"lista/internal/services"
	appweb "lista/web"
)

type Server struct {
	http.Server

	templates *template.Template
	svc       *services.ListService
	logger    *applog.Logger

	limiter      *ratelimit.Limiter
	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run server. The template parse error is fatal for the caller
// to decide on; a web app without its templates cannot serve anything.
func NewServer(addr string, svc *services.ListService, logger *applog.Logger) (*Server, error) {
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		templates: t,
		svc:       svc,
		logger:    logger.WithComponent(applog.ComponentHTTP),
		limiter:   ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}

	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/items", s.handleSubmitItem)
	mux.HandleFunc("/items/edit", s.handleRequestEdit)
	mux.HandleFunc("/items/cancel", s.handleCancelEdit)
	mux.HandleFunc("/items/delete", s.handleDeleteItem)
	mux.HandleFunc("/budget", s.handleChangeBudget)
	mux.HandleFunc("/export/csv", s.handleExportCSV)
	mux.HandleFunc("/export/sheets", s.handleExportSheets)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(clientIP)
	limited := s.limiter.Middleware(clientIP, handleRateLimited)(mux)

	// Mutations go through the rate limiter; reads and static assets skip it.
	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodDelete {
			limited.ServeHTTP(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})

	s.Server = http.Server{
		Addr:    addr,
		Handler: tracer.Middleware(headers.Middleware(root)),
	}
	return s, nil
}

// Shutdown stops the limiter cleanup goroutine before draining the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func handleRateLimited(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "60")
	http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
}

// clientIP extracts the caller's address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if i := strings.IndexByte(ip, ','); i >= 0 {
			return strings.TrimSpace(ip[:i])
		}
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
