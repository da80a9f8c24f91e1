package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/iam-policy-generator/internal/audit"
	"github.com/iam-policy-generator/internal/auth"
	"github.com/iam-policy-generator/internal/catalog"
	apierrors "github.com/iam-policy-generator/internal/errors"
)

// Server exposes the catalog, policy generation and simulation over HTTP
type Server struct {
	catalog      *catalog.Catalog
	keys         auth.KeyStore
	auditLogger  audit.Logger
	maxBodyBytes int64
	router       chi.Router
}

// New creates a Server. keys may be nil to disable authentication and
// maxBodyBytes <= 0 disables the body limit.
func New(cat *catalog.Catalog, keys auth.KeyStore, auditLogger audit.Logger, maxBodyBytes int64) *Server {
	s := &Server{
		catalog:      cat,
		keys:         keys,
		auditLogger:  auditLogger,
		maxBodyBytes: maxBodyBytes,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(withRequestID)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteError(w, apierrors.New(apierrors.CodeNotFound, "no such endpoint", requestID(r)))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteError(w, apierrors.New(apierrors.CodeInvalidRequest, "method not allowed", requestID(r)))
	})

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.keys, requestID))
		r.Use(s.limitBody)

		r.Get("/v1/catalog", s.handleCatalog)
		r.Get("/v1/catalog/{resourceID}/actions", s.handleActions)
		r.Post("/v1/policies", s.handleGenerate)
		r.Post("/v1/identifiers/validate", s.handleValidateIdentifier)
		r.Post("/v1/simulate", s.handleSimulate)
	})

	return r
}

// ServeHTTP handles incoming HTTP requests
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	if s.maxBodyBytes <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
