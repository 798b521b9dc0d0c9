package web

import (
	"net/http"
	"sync"

	"volei-app/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Options struct {
	Title             string
	AdminUser         string
	AdminPasswordHash string
	IsDev             bool
}

type Server struct {
	store     store.Store
	templates *Templates
	logger    *zap.Logger
	opts      Options

	mu        sync.RWMutex
	sourceErr error
}

func NewServer(store store.Store, templates *Templates, logger *zap.Logger, opts Options) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{store: store, templates: templates, logger: logger, opts: opts}
}

// SetSourceError marks the external data source as unavailable. Pages answer
// with a failure state until a successful import clears it.
func (s *Server) SetSourceError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sourceErr = err
}

func (s *Server) sourceError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sourceErr
}

// htmxRequest reports whether r came from an htmx swap. Those requests get
// fragments and HX-Redirect instead of full pages and 303s.
func htmxRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/", s.handleHome)
	r.Get("/schedule", s.handleSchedule)
	r.Get("/dev/export", s.handleDevExport)

	r.Route("/api", func(r chi.Router) {
		r.Get("/standings", s.handleAPIStandings)
		r.Get("/dates", s.handleAPIDates)
		r.Get("/schedule", s.handleAPISchedule)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Post("/import", s.handleAdminImport)
		r.Post("/matches/{matchID}/result", s.handleAdminMatchResult)
	})

	return r
}
