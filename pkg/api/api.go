// Package api serves flowpack layouts over HTTP.
//
// Routes:
//
//	GET  /healthz                      liveness and version
//	POST /v1/layout                    lay out a scene, store the result
//	GET  /v1/layouts/{id}              fetch a stored result
//	GET  /v1/layouts/{id}/{format}     render a stored result (svg, json, txt)
//
// Errors are JSON documents carrying the code from pkg/errors; the code
// decides the HTTP status (see [StatusFor]).
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flowpack/pkg/buildinfo"
	flowerrors "github.com/matzehuels/flowpack/pkg/errors"
	"github.com/matzehuels/flowpack/pkg/pipeline"
	"github.com/matzehuels/flowpack/pkg/store"
)

// DefaultMaxBodyBytes bounds the size of a layout request.
const DefaultMaxBodyBytes = 1 << 20

// Server handles API requests. It is safe for concurrent use.
type Server struct {
	runner       *pipeline.Runner
	store        store.Store
	logger       *log.Logger
	maxBodyBytes int64
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option { return func(s *Server) { s.maxBodyBytes = n } }

// New creates a server. A nil store keeps results in memory.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, opts ...Option) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:       runner,
		store:        st,
		logger:       logger,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hooks)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Get("/layouts/{id}", s.handleGetLayout)
		r.Get("/layouts/{id}/{format}", s.handleRenderLayout)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, flowerrors.New(flowerrors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// Response Helpers
// =============================================================================

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    flowerrors.Code `json:"code"`
	Message string          `json:"message"`
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	switch code := flowerrors.GetCode(err); {
	case code == flowerrors.ErrCodeNotFound, code == flowerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == flowerrors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case flowerrors.IsInvalid(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	code := flowerrors.GetCode(err)
	msg := flowerrors.UserMessage(err)
	if code == "" {
		code = flowerrors.ErrCodeInternal
	}
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
