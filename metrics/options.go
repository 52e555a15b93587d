package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type (
	Option                func(*Server)
	InstrumentationOption func(instrumentation *Instrumentation)
)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.log = logger
	}
}

func WithEnabled(enabled bool) Option {
	return func(s *Server) {
		s.enabled = enabled
	}
}

func WithPath(path string) Option {
	return func(s *Server) {
		s.path = path
	}
}

func WithPort(port int) Option {
	return func(s *Server) {
		s.port = port
	}
}

func WithHost(host string) Option {
	return func(s *Server) {
		s.host = host
	}
}

func WithHttpTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.httpReadTimeout = timeout
	}
}

func WithHttpHeaderTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.httpReadHeaderTimeout = timeout
	}
}

func WithCounterVec(instrumentationType InstrumentationType, name, help string, labels []string) InstrumentationOption {
	return func(instrumentation *Instrumentation) {
		instrumentation.CounterVecs[instrumentationType] = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: instrumentation.namespace,
			Name:      name,
			Help:      help,
		}, labels)
	}
}

func WithGaugeVec(instrumentationType InstrumentationType, name, help string, labels []string) InstrumentationOption {
	return func(instrumentation *Instrumentation) {
		instrumentation.GaugeVecs[instrumentationType] = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: instrumentation.namespace,
			Name:      name,
			Help:      help,
		}, labels)
	}
}

func WithHistogramVec(instrumentationType InstrumentationType, name, help string, labels []string, buckets []float64) InstrumentationOption {
	return func(instrumentation *Instrumentation) {
		instrumentation.HistogramVecs[instrumentationType] = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: instrumentation.namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		}, labels)
	}
}
