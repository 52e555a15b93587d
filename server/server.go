package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	serieserrors "github.com/dora-network/series-utils/errors"
	"github.com/dora-network/series-utils/evaluator"
	"github.com/dora-network/series-utils/metrics"
)

var (
	ErrServerRunning    = serieserrors.NewInternal("api server is already running")
	ErrServerNotRunning = serieserrors.NewInternal("api server is not running")
)

type Option func(*Server)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.log = logger
	}
}

// WithInstrumentation wraps every route in metrics.HttpMiddleware.
func WithInstrumentation(instrumentation *metrics.Instrumentation) Option {
	return func(s *Server) {
		s.instrumentation = instrumentation
	}
}

// Server exposes an Evaluator over HTTP.
type Server struct {
	mu              sync.Mutex
	cfg             Config
	evaluator       *evaluator.Evaluator
	log             zerolog.Logger
	instrumentation *metrics.Instrumentation
	srv             *http.Server
	listener        net.Listener
}

func New(cfg Config, e *evaluator.Evaluator, opts ...Option) *Server {
	s := &Server{
		cfg:       cfg,
		evaluator: e,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routes, instrumented when the server has instrumentation.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /v1/eval", evalHandler(s.evaluator, s.log))
	mux.HandleFunc("GET /healthz", healthHandler)

	if s.instrumentation == nil {
		return mux
	}
	return metrics.NewHttpMiddleware(s.instrumentation).Handle(mux)
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return ErrServerRunning
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}
	s.srv, s.listener = srv, ln

	go func() {
		s.log.Info().
			Str("addr", ln.Addr().String()).
			Uint("max_order", s.evaluator.MaxOrder()).
			Msg("starting api server")

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("api server stopped")
		}
	}()
	return nil
}

// Addr returns the listening address, or nil when the server is not running.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop waits for in-flight requests to finish, or for ctx to expire.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv == nil {
		return ErrServerNotRunning
	}
	err := s.srv.Shutdown(ctx)
	s.srv, s.listener = nil, nil
	return err
}
