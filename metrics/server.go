package metrics

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	defaultReadTimeout       = time.Minute
	defaultReadHeaderTimeout = time.Minute
	defaultPort              = 8081
)

type Server struct {
	mu                    sync.Mutex
	srv                   *http.Server
	listener              net.Listener
	reg                   *prometheus.Registry
	log                   zerolog.Logger
	enabled               bool
	host                  string
	port                  int
	path                  string
	isRunning             bool
	httpReadTimeout       time.Duration
	httpReadHeaderTimeout time.Duration
}

func defaultServer() *Server {
	return &Server{
		enabled:               true,
		log:                   zerolog.Nop(),
		reg:                   prometheus.NewRegistry(),
		port:                  defaultPort,
		path:                  "/metrics",
		httpReadTimeout:       defaultReadTimeout,
		httpReadHeaderTimeout: defaultReadHeaderTimeout,
	}
}

func NewServer(opts ...Option) *Server {
	s := defaultServer()
	applyOpts(s, opts)
	return s
}

func applyOpts(s *Server, opts []Option) {
	for _, opt := range opts {
		opt(s)
	}
}

func (s *Server) Path() string {
	if s.path == "" {
		return "/metrics"
	}
	return s.path
}

// Start listens on the configured address and serves the registry in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return ErrMetricsDisabled
	}

	if s.srv != nil && s.isRunning {
		return ErrMetricsRunning
	}

	mux := http.NewServeMux()
	mux.Handle(s.Path(), promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))

	s.srv = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:           mux,
		ReadTimeout:       s.httpReadTimeout,
		ReadHeaderTimeout: s.httpReadHeaderTimeout,
	}

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}
	s.listener = ln

	go func() {
		s.log.Info().
			Str("addr", ln.Addr().String()).
			Str("path", s.Path()).
			Msg("starting metrics server")

		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	s.isRunning = true

	return nil
}

func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return ErrMetricsDisabled
	}

	if s.srv == nil || !s.isRunning {
		return ErrMetricsNotRunning
	}

	if err := s.srv.Close(); err != nil {
		return err
	}

	s.isRunning = false
	return nil
}

// Addr returns the address the server is listening on, or nil when it is not running.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) Registry() *prometheus.Registry {
	return s.reg
}

func (s *Server) Register(instrumentation *Instrumentation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range instrumentation.Collectors() {
		if err := s.reg.Register(c); err != nil {
			return fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return nil
}

// StartMetricsServer registers instrumentation and the Go runtime collector, publishes version and starts serving.
// A disabled config returns a server that was never started and no error.
func StartMetricsServer(config Config, instrumentation *Instrumentation, logger zerolog.Logger, version string) (*Server, error) {
	metricsSvr := NewServer(
		WithLogger(logger),
		WithEnabled(config.Enabled),
		WithHost(config.Host),
		WithPort(config.Port),
		WithPath(config.Path),
		WithHttpTimeout(config.HttpTimeout),
		WithHttpHeaderTimeout(config.HttpHeaderTimeout),
	)
	if err := metricsSvr.Register(instrumentation); err != nil {
		logger.Err(err).
			Msg("failed to start metrics server")
		return nil, err
	}

	if err := metricsSvr.Registry().Register(collectors.NewGoCollector()); err != nil {
		logger.Err(err).
			Msg("failed to register go collector")
		return nil, err
	}

	instrumentation.SetVersion(version)
	if !config.Enabled {
		logger.Info().Msg("metrics server disabled")
		return metricsSvr, nil
	}
	if err := metricsSvr.Start(); err != nil {
		logger.Err(err).
			Msg("failed to start metrics server")
		return nil, err
	}

	return metricsSvr, nil
}
