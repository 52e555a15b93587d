package metrics

import (
	"net/http"
	"time"
)

const (
	// unmatchedRoute labels requests that no route pattern matched, such as 404s and 405s.
	unmatchedRoute = "unmatched"
	otherMethod    = "other"
)

var knownMethods = map[string]struct{}{
	http.MethodGet: {}, http.MethodHead: {}, http.MethodPost: {}, http.MethodPut: {}, http.MethodPatch: {},
	http.MethodDelete: {}, http.MethodConnect: {}, http.MethodOptions: {}, http.MethodTrace: {},
}

// HttpMiddleware records request counts and latencies per method and matched route.
// It must wrap an http.ServeMux: the route is the pattern the mux stores on the request,
// never the raw path, which would let clients create a series per URL.
type HttpMiddleware struct {
	instrumentation *Instrumentation
}

func NewHttpMiddleware(instrumentation *Instrumentation) *HttpMiddleware {
	return &HttpMiddleware{
		instrumentation: instrumentation,
	}
}

func (m *HttpMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start).Seconds()

		method, route := r.Method, r.Pattern
		if _, ok := knownMethods[method]; !ok {
			method = otherMethod
		}
		if route == "" {
			route = unmatchedRoute
		}
		m.instrumentation.CounterVecs[InstrumentationTypeHttpRequestCount].
			WithLabelValues(method, route).Inc()
		m.instrumentation.HistogramVecs[InstrumentationTypeHttpRequestDuration].
			WithLabelValues(method, route).Observe(elapsed)
	})
}
