// Package webserver exposes the scoring engine over a small JSON API.
package webserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spboyer/dealerrank/internal/models"
	"github.com/spboyer/dealerrank/internal/scoring"
)

//go:generate go tool mockgen -source=server.go -destination=mocks_test.go -package=webserver Scorer

// DefaultPort is used when Config.Port is zero.
const DefaultPort = 3000

// DefaultMaxBodyBytes bounds the size of a score request.
const DefaultMaxBodyBytes = 10 << 20

// Scorer runs scoring passes under a fixed weight set. *scoring.Engine
// satisfies it.
type Scorer interface {
	Weights() models.WeightSet
	Run(entities []models.Entity, policy scoring.MissingPolicy) (*scoring.Result, error)
}

// Config holds the HTTP server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	Scorer         Scorer
	// Missing applies when a request does not name a policy.
	Missing scoring.MissingPolicy
	// IDColumn names the identifier field of tabular rows.
	IDColumn       string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	Logger         *slog.Logger
}

// Server wraps the HTTP server with configuration.
type Server struct {
	cfg    Config
	srv    *http.Server
	logger *slog.Logger
}

// New creates a new HTTP server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Scorer == nil {
		return nil, errors.New("webserver: a Scorer is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Missing == "" {
		cfg.Missing = scoring.DefaultMissingPolicy
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		srv: &http.Server{
			Addr:              fmt.Sprintf("127.0.0.1:%d", cfg.Port),
			Handler:           newRouter(cfg),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("HTTP server starting", "address", s.srv.Addr)

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", "error", err)
		}
	}()

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Handler returns the underlying http.Handler (useful for testing).
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
