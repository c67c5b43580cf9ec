package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/fwojciec/seoedit"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ShutdownTimeout bounds graceful shutdown in Serve.
const ShutdownTimeout = 10 * time.Second

// maxRequestBody caps JSON request bodies.
const maxRequestBody = 1 << 20

// Server is the JSON API. Its dependencies are exported fields set after
// NewServer and before the first request.
type Server struct {
	Analyzer   seoedit.SiteAnalyzer
	Requesters map[seoedit.Facet]seoedit.Requester
	Completer  seoedit.Completer
	Workspaces seoedit.WorkspaceService
	Logger     *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	router chi.Router
}

// NewServer creates a Server with its routes registered.
func NewServer() *Server {
	s := &Server{
		Logger: slog.New(slog.DiscardHandler),
		Now:    func() time.Time { return time.Now().UTC() },
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP satisfies the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Post("/site-analyze", s.handleSiteAnalyze)
	r.Post("/meta-analysis", s.handleMetaAnalysis)
	r.Post("/heading-analysis", s.handleHeadingAnalysis)
	r.Post("/custom-analysis", s.handleCustomAnalysis)

	r.Route("/ai", func(r chi.Router) {
		r.Post("/suggestions", s.handleSuggestions)
		r.Post("/generate", s.handleGenerate)
	})

	r.Route("/workspaces", func(r chi.Router) {
		r.Post("/", s.handleCreateWorkspace)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetWorkspace)
			r.Delete("/", s.handleDeleteWorkspace)
			r.Post("/refresh", s.handleRefreshWorkspace)
			r.Post("/cursor", s.handleSetCursor)
			r.Post("/suggestions/{facet}", s.handleProposeSuggestion)
			r.Post("/suggestions/{facet}/apply", s.handleApplySuggestion)
			r.Post("/suggestions/{facet}/dismiss", s.handleDismissSuggestion)
		})
	})
}

// Serve listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": s.Now(),
	})
}

// logRequests logs one line per request with chi's request id.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func(begin time.Time) {
			s.Logger.Info("http request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}

// recoverPanics turns a handler panic into a JSON 500 response.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			err := seoedit.Errorf(seoedit.EINTERNAL, "panic: %v", v)
			if ww, ok := w.(middleware.WrapResponseWriter); ok && ww.Status() != 0 {
				s.Logger.Error("panic after response started",
					"request_id", middleware.GetReqID(r.Context()),
					"path", r.URL.Path,
					"err", err,
					"stack", string(debug.Stack()),
				)
				return
			}
			s.writeError(w, r, err, "Internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}

// codes maps application error codes to HTTP statuses.
var codes = map[string]int{
	seoedit.EINVALID:  http.StatusBadRequest,
	seoedit.ENOTFOUND: http.StatusNotFound,
	seoedit.ECONFLICT: http.StatusConflict,
	seoedit.EINTERNAL: http.StatusInternalServerError,
	seoedit.EFETCH:    http.StatusInternalServerError,
	seoedit.EEXTRACT:  http.StatusInternalServerError,
	seoedit.ESCHEMA:   http.StatusInternalServerError,
	seoedit.EMODEL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeError logs err and writes it as JSON. Server-side failures are
// reported with the generic fallback message instead of the error text.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	code := seoedit.ErrorCode(err)
	status := ErrorStatusCode(code)

	msg := seoedit.ErrorMessage(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"path", r.URL.Path,
			"code", code,
			"err", err,
		)
		msg = fallback
	}
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

// decode reads a JSON request body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return seoedit.Errorf(seoedit.EINVALID, "Invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
