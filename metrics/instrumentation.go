package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentationType is the type of instrumentation the metric is capturing
type InstrumentationType uint64

const (
	InstrumentationTypeVersion InstrumentationType = iota
	InstrumentationTypeHttpRequestCount
	InstrumentationTypeHttpRequestDuration
	InstrumentationTypeEvaluationCount
	InstrumentationTypeEvaluationFailure
	InstrumentationTypeEvaluationDuration
)

var (
	httpLabels       = []string{"method", "route"}
	evaluationLabels = []string{"function", "mode"}
)

type Instrumentation struct {
	namespace     string
	CounterVecs   map[InstrumentationType]*prometheus.CounterVec
	GaugeVecs     map[InstrumentationType]*prometheus.GaugeVec
	HistogramVecs map[InstrumentationType]*prometheus.HistogramVec
}

func NewInstrumentation(namespace string, opts ...InstrumentationOption) *Instrumentation {
	instrumentation := &Instrumentation{
		namespace:     namespace,
		CounterVecs:   make(map[InstrumentationType]*prometheus.CounterVec),
		GaugeVecs:     make(map[InstrumentationType]*prometheus.GaugeVec),
		HistogramVecs: make(map[InstrumentationType]*prometheus.HistogramVec),
	}

	for _, opt := range opts {
		opt(instrumentation)
	}
	return instrumentation
}

// NewSeriesInstrumentation returns the instrumentation used by the evaluation service:
// build version, HTTP request counts and latencies, and per function evaluation counts.
func NewSeriesInstrumentation(namespace string) *Instrumentation {
	return NewInstrumentation(namespace,
		WithGaugeVec(InstrumentationTypeVersion, "version", "Build version of the running service", []string{"version"}),
		WithCounterVec(InstrumentationTypeHttpRequestCount, "http_requests_total", "HTTP requests received", httpLabels),
		WithHistogramVec(InstrumentationTypeHttpRequestDuration, "http_request_duration_seconds", "HTTP request latency", httpLabels, prometheus.DefBuckets),
		WithCounterVec(InstrumentationTypeEvaluationCount, "evaluations_total", "Series evaluations performed", evaluationLabels),
		WithCounterVec(InstrumentationTypeEvaluationFailure, "evaluation_failures_total", "Series evaluations rejected or failed", evaluationLabels),
		WithHistogramVec(InstrumentationTypeEvaluationDuration, "evaluation_duration_seconds", "Series evaluation latency", evaluationLabels,
			prometheus.ExponentialBuckets(1e-7, 4, 10)),
	)
}

func (i *Instrumentation) Collectors() (collectors []prometheus.Collector) {
	for _, counterVecs := range i.CounterVecs {
		collectors = append(collectors, counterVecs)
	}
	for _, gaugeVecs := range i.GaugeVecs {
		collectors = append(collectors, gaugeVecs)
	}
	for _, histogramVecs := range i.HistogramVecs {
		collectors = append(collectors, histogramVecs)
	}
	return
}

// ObserveEvaluation records one series evaluation. A nil receiver is a no-op.
func (i *Instrumentation) ObserveEvaluation(function, mode string, elapsed time.Duration, err error) {
	if i == nil {
		return
	}
	i.CounterVecs[InstrumentationTypeEvaluationCount].WithLabelValues(function, mode).Inc()
	i.HistogramVecs[InstrumentationTypeEvaluationDuration].WithLabelValues(function, mode).Observe(elapsed.Seconds())
	if err != nil {
		i.CounterVecs[InstrumentationTypeEvaluationFailure].WithLabelValues(function, mode).Inc()
	}
}

// SetVersion publishes the running build version.
func (i *Instrumentation) SetVersion(version string) {
	i.GaugeVecs[InstrumentationTypeVersion].With(prometheus.Labels{"version": version}).Set(1)
}
