// Package httpapi exposes the item operations over HTTP.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/itemstore/pkg/core"
)

// Server routes requests to a core.Service.
type Server struct {
	svc    *core.Service
	logger *slog.Logger
	debug  bool
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for access and transport logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDebug exposes GET /debug/state.
func WithDebug(enabled bool) Option {
	return func(s *Server) {
		s.debug = enabled
	}
}

// New builds the router for svc.
func New(svc *core.Service, opts ...Option) *Server {
	s := &Server{svc: svc, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Post("/create", s.handleCreate)
	r.Get("/get", s.handleList)
	r.Put("/update", s.handleUpdate)
	r.Delete("/delete", s.handleDelete)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s.write(w, r, http.StatusOK, contentTypeText, []byte("ok"))
	})
	if s.debug {
		r.Get("/debug/state", s.handleState)
	}

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	item, err := decodeItem(w, r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	s.respond(w, r, s.svc.CreateItem(r.Context(), item))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.svc.ListItems(r.Context()))
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	item, err := decodeItem(w, r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	s.respond(w, r, s.svc.UpdateItem(r.Context(), item))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	req, err := decodeDelete(w, r)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	s.respond(w, r, s.svc.DeleteItem(r.Context(), req))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	data, err := json.Marshal(s.svc.State())
	if err != nil {
		s.write(w, r, http.StatusInternalServerError, contentTypeText, []byte(err.Error()))
		return
	}
	s.write(w, r, http.StatusOK, contentTypeJSON, data)
}
