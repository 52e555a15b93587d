package server_test

import (
	"context"
	"io"
	stdmath "math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/dora-network/series-utils/errors"
	"github.com/dora-network/series-utils/evaluator"
	"github.com/dora-network/series-utils/metrics"
	"github.com/dora-network/series-utils/server"
)

type errorBody struct {
	Error string           `json:"error"`
	Type  errors.ErrorType `json:"type"`
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDefaultConfig(t *testing.T) {
	require.Equal(t, server.Config{
		Port:              8080,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}, server.DefaultConfig())
}

func TestEval(t *testing.T) {
	h := server.New(server.DefaultConfig(), evaluator.New()).Handler()

	rec := get(t, h, "/v1/eval?function=sin&order=15&x=1.5707963267948966")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res evaluator.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, evaluator.FunctionSin, res.Function)
	require.Equal(t, evaluator.ModeFloat, res.Mode)
	require.Equal(t, uint(15), res.Order)
	require.InDelta(t, 1.0, res.Value, 1e-6)

	rec = get(t, h, "/v1/eval?function=factorial&order=20&mode=decimal")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, "2432902008176640000", res.Exact)

	rec = get(t, h, "/v1/eval?function=exp&order=10&x=1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.InDelta(t, stdmath.E, res.Value, 1e-6)
}

func TestEvalErrors(t *testing.T) {
	h := server.New(server.DefaultConfig(), evaluator.New(evaluator.WithMaxOrder(30))).Handler()

	tcs := []struct {
		name   string
		target string
		status int
		typ    errors.ErrorType
	}{
		{"unknown function", "/v1/eval?function=tan&order=3&x=1", http.StatusBadRequest, errors.InvalidInputError},
		{"missing function", "/v1/eval?order=3&x=1", http.StatusBadRequest, errors.InvalidInputError},
		{"negative order", "/v1/eval?function=sin&order=-1&x=1", http.StatusBadRequest, errors.InvalidInputError},
		{"bad x", "/v1/eval?function=sin&order=3&x=abc", http.StatusBadRequest, errors.InvalidInputError},
		{"infinite x", "/v1/eval?function=sin&order=3&x=Inf", http.StatusBadRequest, errors.InvalidInputError},
		{"order too large", "/v1/eval?function=cos&order=31&x=1", http.StatusBadRequest, errors.InvalidInputError},
		{"decimal overflow", "/v1/eval?function=exp&order=25&x=1&mode=decimal", http.StatusUnprocessableEntity, errors.OverflowError},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, h, tc.target)
			require.Equal(t, tc.status, rec.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tc.typ, body.Type)
			require.NotEmpty(t, body.Error)
		})
	}
}

func TestEvalParseErrorMessages(t *testing.T) {
	h := server.New(server.DefaultConfig(), evaluator.New()).Handler()

	var body errorBody
	rec := get(t, h, "/v1/eval?function=sin&order=-1")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, `order must be a non-negative integer, got "-1"`, body.Error)

	rec = get(t, h, "/v1/eval?function=sin&x=abc")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, `x must be a number, got "abc"`, body.Error)
}

func TestMethodNotAllowed(t *testing.T) {
	h := server.New(server.DefaultConfig(), evaluator.New()).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/eval?function=sin", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestInstrumentedHandler(t *testing.T) {
	ins := metrics.NewSeriesInstrumentation("series_api")
	e := evaluator.New(evaluator.WithInstrumentation(ins))
	h := server.New(server.DefaultConfig(), e, server.WithInstrumentation(ins)).Handler()

	require.Equal(t, http.StatusOK, get(t, h, "/healthz").Code)
	require.Equal(t, http.StatusOK, get(t, h, "/v1/eval?function=cos&order=4&x=0.5").Code)

	requests := ins.CounterVecs[metrics.InstrumentationTypeHttpRequestCount].WithLabelValues(http.MethodGet, "GET /v1/eval")
	evaluations := ins.CounterVecs[metrics.InstrumentationTypeEvaluationCount].WithLabelValues("cos", "float")
	require.Equal(t, 1.0, testutil.ToFloat64(requests))
	require.Equal(t, 1.0, testutil.ToFloat64(evaluations))
}

func TestServerLifecycle(t *testing.T) {
	cfg := server.DefaultConfig()
	cfg.Host, cfg.Port = "127.0.0.1", 0
	s := server.New(cfg, evaluator.New())

	require.ErrorIs(t, s.Stop(context.Background()), server.ErrServerNotRunning)
	require.NoError(t, s.Start())
	require.ErrorIs(t, s.Start(), server.ErrServerRunning)

	resp, err := http.Get("http://" + s.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))

	require.NoError(t, s.Stop(context.Background()))
	require.Nil(t, s.Addr())
}
