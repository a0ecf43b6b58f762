package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the webhook HTTP front door.
type Server struct {
	config     Config
	dispatcher Dispatcher
	filter     *SourceFilter
	logger     *slog.Logger
	server     *http.Server
}

// New creates a new webhook server instance.
func New(config Config, dispatcher Dispatcher, logger *slog.Logger) (*Server, error) {
	if config.Secret == "" {
		return nil, fmt.Errorf("webhook secret is empty")
	}
	if config.MaxBodySize == 0 {
		config.MaxBodySize = DefaultMaxBodySize
	}

	filter, err := NewSourceFilter(config.AllowedSources)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:     config,
		dispatcher: dispatcher,
		filter:     filter,
		logger:     logger,
	}, nil
}

// Start starts the webhook HTTP server (blocking).
func (s *Server) Start(ctx context.Context) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         s.config.Listen,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("webhook server starting", "listen", s.config.Listen)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("webhook server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("webhook server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("webhook server error: %w", err)
	}
}

// setupRoutes configures the HTTP router.
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// No RealIP here: the source filter keys on the TCP peer address, and
	// forwarded-for style headers are client-controlled.
	r.Use(middleware.RequestID)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Post("/github", s.handleDelivery)
	r.Get("/healthz", s.handleHealthz)

	return r
}

// loggingMiddleware logs HTTP requests (excludes payload content).
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("webhook request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// handleDelivery handles incoming webhook POST requests. The source check
// and signature check run before anything touches the payload; the 204 is
// written as soon as dispatch is invoked, so downstream calls never delay
// the acknowledgment.
func (s *Server) handleDelivery(w http.ResponseWriter, r *http.Request) {
	// Re-evaluated per request; the decision is never cached.
	if !s.filter.Allowed(r.RemoteAddr) {
		s.logger.Warn("delivery from non-allow-listed source", "remote_addr", r.RemoteAddr)
		s.respondText(w, http.StatusForbidden, msgAccessDenied)
		return
	}

	limitedReader := io.LimitReader(r.Body, s.config.MaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		s.respondText(w, http.StatusInternalServerError, "failed to read request body")
		return
	}
	if int64(len(body)) > s.config.MaxBodySize {
		s.respondText(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	// The digest is computed over the raw body bytes as received; see
	// verifySignature for why.
	signature := r.Header.Get(HeaderSignature)
	if err := verifySignature(body, signature, s.config.Secret); err != nil {
		s.logger.Warn("delivery signature rejected", "remote_addr", r.RemoteAddr, "error", err)
		if errors.Is(err, errMissingSignature) {
			s.respondText(w, http.StatusBadRequest, msgMissingSignature)
			return
		}
		s.respondText(w, http.StatusBadRequest, msgBadSignature)
		return
	}

	event := r.Header.Get(HeaderEvent)
	deliveryID := r.Header.Get(HeaderDelivery)
	if handled := s.dispatcher.Dispatch(event, deliveryID, body); !handled {
		s.logger.Debug("no handler for event", "event", event, "delivery_id", deliveryID)
	}

	// Accepted and dispatched, whether or not a note will be published.
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// respondText sends a plain-text response.
func (s *Server) respondText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(message))
}
