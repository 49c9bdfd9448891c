package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/logger"
)

// uploadSlack is the multipart framing allowance on top of the file cap.
const uploadSlack = 1 << 20

// maxQueryBodyBytes caps chat and search request bodies.
const maxQueryBodyBytes = 1 << 20

// Middleware wraps a handler.
type Middleware func(h http.Handler) http.Handler

// Options configures the HTTP server.
type Options struct {
	// RequestsPerSecond is the sustained request rate. Zero disables limiting.
	RequestsPerSecond float64

	// Burst is the maximum request burst.
	Burst int

	// MaxUploadBytes is the largest accepted file upload.
	MaxUploadBytes int64

	// Middleware runs inside the built-in logging, recovery and rate limit layers.
	Middleware []Middleware
}

// Server is the docchat HTTP API.
type Server struct {
	ports   *Ports
	router  *mux.Router
	limiter *rate.Limiter
	opts    Options
	handler http.Handler
}

// NewServer creates an HTTP server over the given ports.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if ports == nil {
		return nil, ErrMissingIngestService
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = domain.DefaultMaxUploadBytes
	}

	s := &Server{
		ports:  ports,
		router: mux.NewRouter(),
		opts:   opts,
	}
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	s.registerRoutes()

	var h http.Handler = s.router
	for i := len(opts.Middleware) - 1; i >= 0; i-- {
		h = opts.Middleware[i](h)
	}
	s.handler = logRequests(recoverPanics(s.rateLimit(h)))

	return s, nil
}

func (s *Server) registerRoutes() {
	r := s.router

	r.Handle("/api/upload-text/", postOnly(s.handleUploadText))
	r.Handle("/api/upload-file/", postOnly(s.handleUploadFile))
	r.Handle("/api/chat/", postOnly(s.handleChat))
	r.Handle("/api/search/", postOnly(s.handleSearch))
	r.HandleFunc("/api/documents/", s.handleDocuments).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet, http.MethodHead)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("no such endpoint"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method not allowed"))
	})
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves the API on addr.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", "error", err)
		}
	}()

	logger.Info("http server listening", "addr", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
