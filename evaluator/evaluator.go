package evaluator

import (
	"strconv"
	"time"

	"github.com/govalues/decimal"
	"github.com/rs/zerolog"

	"github.com/dora-network/series-utils/errors"
	"github.com/dora-network/series-utils/math"
	mdecimal "github.com/dora-network/series-utils/math/decimal"
	"github.com/dora-network/series-utils/metrics"
	"github.com/dora-network/series-utils/stringify"
	"github.com/dora-network/series-utils/validation"
)

const (
	// DefaultMaxOrder bounds the order accepted by an Evaluator built without WithMaxOrder.
	DefaultMaxOrder = 100
	// MaxOrderLimit is the largest max order an Evaluator accepts. Float mode work is
	// quadratic in the order and recursion depth linear, so larger limits are clamped.
	MaxOrderLimit = 1000

	// invalidLabel replaces unknown function and mode names in metric labels.
	invalidLabel = "invalid"
)

type Function string

const (
	FunctionPower     Function = "pow"
	FunctionFactorial Function = "factorial"
	FunctionExp       Function = "exp"
	FunctionSin       Function = "sin"
	FunctionCos       Function = "cos"
)

// Functions lists every function an Evaluator accepts.
var Functions = []Function{FunctionPower, FunctionFactorial, FunctionExp, FunctionSin, FunctionCos}

type Mode string

const (
	ModeFloat   Mode = "float"
	ModeDecimal Mode = "decimal"
)

type Request struct {
	Function Function `json:"function"`
	Mode     Mode     `json:"mode"`
	Order    uint     `json:"order"`
	X        float64  `json:"x"`
}

type Result struct {
	Function Function `json:"function"`
	Mode     Mode     `json:"mode"`
	Order    uint     `json:"order"`
	X        float64  `json:"x"`
	Value    float64  `json:"value"`
	// Exact is the value at full precision: the shortest float64 repr, or the decimal string.
	Exact string `json:"exact"`
}

// Text implements stringify.Texter.
func (r Result) Text() (string, error) {
	return stringify.Join(string(r.Function), r.Order, r.X, r.Value)
}

type Option func(*Evaluator)

// WithMaxOrder sets the largest accepted order, clamped to MaxOrderLimit.
func WithMaxOrder(maxOrder uint) Option {
	return func(e *Evaluator) {
		e.maxOrder = min(maxOrder, MaxOrderLimit)
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Evaluator) {
		e.log = logger
	}
}

func WithInstrumentation(instrumentation *metrics.Instrumentation) Option {
	return func(e *Evaluator) {
		e.instrumentation = instrumentation
	}
}

// Evaluator validates requests and dispatches them to the float64 or decimal series.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	maxOrder        uint
	log             zerolog.Logger
	instrumentation *metrics.Instrumentation
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		maxOrder: DefaultMaxOrder,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) MaxOrder() uint {
	return e.maxOrder
}

// Evaluate computes the requested series. An empty Mode means ModeFloat.
func (e *Evaluator) Evaluate(req Request) (res Result, err error) {
	if req.Mode == "" {
		req.Mode = ModeFloat
	}
	start := time.Now()
	defer func() {
		function, mode := labels(req)
		e.instrumentation.ObserveEvaluation(function, mode, time.Since(start), err)
		if err != nil {
			e.log.Debug().Err(err).
				Str("function", string(req.Function)).
				Str("mode", string(req.Mode)).
				Uint("order", req.Order).
				Float64("x", req.X).
				Msg("evaluation rejected")
		}
	}()

	if err = validate(req, e.maxOrder); err != nil {
		return Result{}, err
	}

	res = Result{Function: req.Function, Mode: req.Mode, Order: req.Order, X: req.X}
	switch req.Mode {
	case ModeDecimal:
		d, err := evalDecimal(req)
		if err != nil {
			return Result{}, err
		}
		f, ok := d.Float64()
		if !ok {
			return Result{}, errors.NewOverflow(string(req.Function), errors.Newf(errors.OverflowError, "%s does not fit a float64", d))
		}
		res.Value, res.Exact = f, d.String()
	default:
		res.Value = evalFloat(req)
		res.Exact = strconv.FormatFloat(res.Value, 'g', -1, 64)
	}
	return res, nil
}

// labels returns the metric labels for req. Names outside the known sets share one
// label value so callers cannot grow the number of series.
func labels(req Request) (function, mode string) {
	function, mode = string(req.Function), string(req.Mode)
	if validation.ValidateOneOf(req.Function, errors.ErrUnknownFunction, Functions...) != nil {
		function = invalidLabel
	}
	if validation.ValidateOneOf(req.Mode, errors.ErrUnknownMode, ModeFloat, ModeDecimal) != nil {
		mode = invalidLabel
	}
	return function, mode
}

func validate(req Request, maxOrder uint) error {
	if err := validation.ValidateOneOf(req.Function, errors.ErrUnknownFunction, Functions...); err != nil {
		return err
	}
	if err := validation.ValidateOneOf(req.Mode, errors.ErrUnknownMode, ModeFloat, ModeDecimal); err != nil {
		return err
	}
	if err := validation.ValidateOrder(req.Order, maxOrder); err != nil {
		return err
	}
	return validation.ValidateArgument(req.X)
}

func evalFloat(req Request) float64 {
	switch req.Function {
	case FunctionPower:
		return math.Power(req.Order, req.X)
	case FunctionFactorial:
		return float64(math.Factorial(req.Order))
	case FunctionExp:
		return math.ExpSeries(req.Order, req.X)
	case FunctionSin:
		return math.SinSeries(req.Order, req.X)
	default:
		return math.CosSeries(req.Order, req.X)
	}
}

func evalDecimal(req Request) (decimal.Decimal, error) {
	if req.Function == FunctionFactorial {
		return mdecimal.Factorial(req.Order)
	}
	x, err := decimal.NewFromFloat64(req.X)
	if err != nil {
		return decimal.Decimal{}, errors.Wrap(errors.InvalidInputError, err, "argument does not fit a decimal")
	}
	switch req.Function {
	case FunctionPower:
		return mdecimal.Power(req.Order, x)
	case FunctionExp:
		return mdecimal.ExpSeries(req.Order, x)
	case FunctionSin:
		return mdecimal.SinSeries(req.Order, x)
	default:
		return mdecimal.CosSeries(req.Order, x)
	}
}
