package evaluator_test

import (
	"fmt"
	stdmath "math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/dora-network/series-utils/errors"
	"github.com/dora-network/series-utils/evaluator"
	"github.com/dora-network/series-utils/metrics"
	"github.com/dora-network/series-utils/stringify"
)

func TestEvaluate(t *testing.T) {
	e := evaluator.New()

	tcs := []struct {
		name  string
		req   evaluator.Request
		exp   float64
		delta float64
	}{
		{"pow", evaluator.Request{Function: evaluator.FunctionPower, Order: 10, X: 2}, 1024, 0},
		{"factorial", evaluator.Request{Function: evaluator.FunctionFactorial, Order: 10}, 3628800, 0},
		{"exp", evaluator.Request{Function: evaluator.FunctionExp, Order: 10, X: 1}, stdmath.E, 1e-6},
		{"sin", evaluator.Request{Function: evaluator.FunctionSin, Order: 15, X: stdmath.Pi / 2}, 1, 1e-6},
		{"cos", evaluator.Request{Function: evaluator.FunctionCos, Order: 15, X: 0}, 1, 0},
		{"decimal pow", evaluator.Request{Function: evaluator.FunctionPower, Mode: evaluator.ModeDecimal, Order: 3, X: 1.5}, 3.375, 0},
		{"decimal factorial", evaluator.Request{Function: evaluator.FunctionFactorial, Mode: evaluator.ModeDecimal, Order: 20}, 2432902008176640000, 0},
		{"decimal exp", evaluator.Request{Function: evaluator.FunctionExp, Mode: evaluator.ModeDecimal, Order: 15, X: 1}, stdmath.E, 1e-9},
		{"decimal sin", evaluator.Request{Function: evaluator.FunctionSin, Mode: evaluator.ModeDecimal, Order: 9, X: stdmath.Pi / 2}, 1, 1e-6},
		{"decimal cos", evaluator.Request{Function: evaluator.FunctionCos, Mode: evaluator.ModeDecimal, Order: 10, X: stdmath.Pi}, -1, 1e-6},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			res, err := e.Evaluate(tc.req)
			require.NoError(t, err)
			require.Equal(t, tc.req.Function, res.Function)
			require.Equal(t, tc.req.Order, res.Order)
			require.NotEmpty(t, res.Exact)
			require.InDelta(t, tc.exp, res.Value, tc.delta)
		})
	}
}

func TestEvaluateDefaultsToFloat(t *testing.T) {
	res, err := evaluator.New().Evaluate(evaluator.Request{Function: evaluator.FunctionExp, Order: 2, X: 1})
	require.NoError(t, err)
	require.Equal(t, evaluator.ModeFloat, res.Mode)
	require.Equal(t, "2.5", res.Exact)
}

func TestEvaluateDecimalExact(t *testing.T) {
	res, err := evaluator.New().Evaluate(evaluator.Request{
		Function: evaluator.FunctionFactorial, Mode: evaluator.ModeDecimal, Order: 5,
	})
	require.NoError(t, err)
	require.Equal(t, "120", res.Exact)
}

func TestEvaluateRejects(t *testing.T) {
	e := evaluator.New(evaluator.WithMaxOrder(20))

	tcs := []struct {
		name   string
		req    evaluator.Request
		typ    errors.ErrorType
		target error
	}{
		{"unknown function", evaluator.Request{Function: "tan", Order: 3}, errors.InvalidInputError, errors.ErrUnknownFunction},
		{"unknown mode", evaluator.Request{Function: evaluator.FunctionSin, Mode: "big"}, errors.InvalidInputError, errors.ErrUnknownMode},
		{"order too large", evaluator.Request{Function: evaluator.FunctionSin, Order: 21}, errors.InvalidInputError, errors.ErrOrderTooLarge},
		{"nan", evaluator.Request{Function: evaluator.FunctionExp, X: stdmath.NaN()}, errors.InvalidInputError, errors.ErrArgumentNotFinite},
		{"decimal factorial overflow", evaluator.Request{Function: evaluator.FunctionSin, Mode: evaluator.ModeDecimal, Order: 10, X: 1}, errors.OverflowError, nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Evaluate(tc.req)
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.typ), "got %v", err)
			if tc.target != nil {
				require.ErrorIs(t, err, tc.target)
			}
		})
	}
}

func TestEvaluateInstrumentation(t *testing.T) {
	ins := metrics.NewSeriesInstrumentation("series_eval")
	e := evaluator.New(evaluator.WithInstrumentation(ins))

	_, err := e.Evaluate(evaluator.Request{Function: evaluator.FunctionCos, Order: 4, X: 0.5})
	require.NoError(t, err)
	_, err = e.Evaluate(evaluator.Request{Function: evaluator.FunctionCos, Order: 1000, X: 0.5})
	require.Error(t, err)

	count := ins.CounterVecs[metrics.InstrumentationTypeEvaluationCount].WithLabelValues("cos", "float")
	failures := ins.CounterVecs[metrics.InstrumentationTypeEvaluationFailure].WithLabelValues("cos", "float")
	require.Equal(t, 2.0, testutil.ToFloat64(count))
	require.Equal(t, 1.0, testutil.ToFloat64(failures))
}

func TestEvaluateBoundsMetricLabels(t *testing.T) {
	ins := metrics.NewSeriesInstrumentation("series_labels")
	e := evaluator.New(evaluator.WithInstrumentation(ins))

	for i := range 500 {
		_, err := e.Evaluate(evaluator.Request{
			Function: evaluator.Function(fmt.Sprintf("fn-%d", i)),
			Mode:     evaluator.Mode(fmt.Sprintf("mode-%d", i)),
		})
		require.Error(t, err)
	}
	_, err := e.Evaluate(evaluator.Request{Function: evaluator.FunctionSin, Mode: "bogus", Order: 3})
	require.ErrorIs(t, err, errors.ErrUnknownMode)

	evaluations := ins.CounterVecs[metrics.InstrumentationTypeEvaluationCount]
	failures := ins.CounterVecs[metrics.InstrumentationTypeEvaluationFailure]
	require.Equal(t, 2, testutil.CollectAndCount(evaluations))
	require.Equal(t, 2, testutil.CollectAndCount(failures))
	require.Equal(t, 500.0, testutil.ToFloat64(evaluations.WithLabelValues("invalid", "invalid")))
	require.Equal(t, 1.0, testutil.ToFloat64(failures.WithLabelValues("sin", "invalid")))
}

func TestWithMaxOrderClamps(t *testing.T) {
	require.Equal(t, uint(evaluator.MaxOrderLimit), evaluator.New(evaluator.WithMaxOrder(100_000_000)).MaxOrder())
	require.Equal(t, uint(20), evaluator.New(evaluator.WithMaxOrder(20)).MaxOrder())
}

func TestResultText(t *testing.T) {
	res, err := evaluator.New().Evaluate(evaluator.Request{Function: evaluator.FunctionSin, Order: 15, X: stdmath.Pi / 2})
	require.NoError(t, err)

	s, err := stringify.Text(res)
	require.NoError(t, err)
	require.Equal(t, "sin 15 1.570796 1.000000", s)
}

func TestEvaluateDeterministic(t *testing.T) {
	e := evaluator.New()
	req := evaluator.Request{Function: evaluator.FunctionExp, Order: 25, X: -3.3}
	a, err := e.Evaluate(req)
	require.NoError(t, err)
	b, err := e.Evaluate(req)
	require.NoError(t, err)
	require.Equal(t, a, b)
}
