package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/mandalnilabja/memelab/internal/config"
)

// Generations can take minutes, so write timeouts are derived from the
// provider timeout rather than fixed.
const (
	readTimeout     = 60 * time.Second
	idleTimeout     = 120 * time.Second
	writeHeadroom   = 30 * time.Second
	shutdownTimeout = 30 * time.Second
)

// Server wraps the HTTP server with its configuration
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	errCh      chan error

	mu       sync.Mutex
	listener net.Listener
	closed   bool
}

// NewServer creates a new configured HTTP server instance
func NewServer(cfg *config.Config, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	writeTimeout := 300 * time.Second
	if cfg.ProviderTimeout > 0 {
		writeTimeout = cfg.ProviderTimeout + writeHeadroom
	}

	srv := &http.Server{
		Addr:              cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return &Server{
		httpServer: srv,
		logger:     logger.With("component", "http_server"),
		errCh:      make(chan error, 1),
	}
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("server is closed")
	}
	if s.listener != nil {
		return errors.New("server already started")
	}

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = listener
	s.logger.Info("starting HTTP server", "addr", listener.Addr().String())

	go s.serve(listener)
	return nil
}

func (s *Server) serve(listener net.Listener) {
	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("HTTP server failed", "error", err)
		select {
		case s.errCh <- err:
		default:
		}
	}
}

// Errors reports a server that stopped serving on its own.
func (s *Server) Errors() <-chan error {
	return s.errCh
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Shutdown stops accepting connections and waits for in-flight requests,
// bounded by ctx and shutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.logger.Info("shutting down HTTP server")

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.listener = nil
	s.logger.Info("HTTP server stopped")
	return nil
}
