package decimal

import (
	"fmt"

	"github.com/govalues/decimal"

	"github.com/dora-network/series-utils/errors"
)

// The series below mirror the float64 ones in the parent package on top of
// fixed-point decimals. Coefficients are limited to 19 digits, so unlike the
// float path these report overflow: 21! is the first factorial that does not fit.

// Power returns x^n by repeated multiplication.
func Power(n uint, x decimal.Decimal) (decimal.Decimal, error) {
	if n == 0 {
		return decimal.One, nil
	}
	lower, err := Power(n-1, x)
	if err != nil {
		return decimal.Decimal{}, err
	}
	p, err := x.Mul(lower)
	if err != nil {
		return decimal.Decimal{}, errors.NewOverflow(fmt.Sprintf("power(%d, %s)", n, x), err)
	}
	return p, nil
}

// Factorial returns n! as a decimal.
func Factorial(n uint) (decimal.Decimal, error) {
	if n == 0 {
		return decimal.One, nil
	}
	lower, err := Factorial(n - 1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	f, err := decimal.New(int64(n), 0)
	if err != nil {
		return decimal.Decimal{}, errors.NewOverflow(fmt.Sprintf("factorial(%d)", n), err)
	}
	f, err = f.Mul(lower)
	if err != nil {
		return decimal.Decimal{}, errors.NewOverflow(fmt.Sprintf("factorial(%d)", n), err)
	}
	return f, nil
}

// term returns sign * x^k / k!.
func term(k uint, x decimal.Decimal, negative bool) (decimal.Decimal, error) {
	p, err := Power(k, x)
	if err != nil {
		return decimal.Decimal{}, err
	}
	f, err := Factorial(k)
	if err != nil {
		return decimal.Decimal{}, err
	}
	t, err := p.Quo(f)
	if err != nil {
		return decimal.Decimal{}, errors.NewOverflow(fmt.Sprintf("term(%d, %s)", k, x), err)
	}
	if negative {
		t = t.Neg()
	}
	return t, nil
}

// add returns t + lower, where lower is the truncation one order below.
func add(t decimal.Decimal, lower decimal.Decimal, op string) (decimal.Decimal, error) {
	sum, err := t.Add(lower)
	if err != nil {
		return decimal.Decimal{}, errors.NewOverflow(op, err)
	}
	return sum, nil
}

// ExpSeries is the degree n Maclaurin approximation of e^x.
func ExpSeries(n uint, x decimal.Decimal) (decimal.Decimal, error) {
	if n == 0 {
		return decimal.One, nil
	}
	t, err := term(n, x, false)
	if err != nil {
		return decimal.Decimal{}, err
	}
	lower, err := ExpSeries(n-1, x)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return add(t, lower, fmt.Sprintf("exp(%d, %s)", n, x))
}

// CosSeries is the degree 2n Maclaurin approximation of cos(x).
func CosSeries(n uint, x decimal.Decimal) (decimal.Decimal, error) {
	if n == 0 {
		return decimal.One, nil
	}
	t, err := term(2*n, x, n%2 == 1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	lower, err := CosSeries(n-1, x)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return add(t, lower, fmt.Sprintf("cos(%d, %s)", n, x))
}

// SinSeries is the degree 2n+1 Maclaurin approximation of sin(x).
func SinSeries(n uint, x decimal.Decimal) (decimal.Decimal, error) {
	if n == 0 {
		return x, nil
	}
	t, err := term(2*n+1, x, n%2 == 1)
	if err != nil {
		return decimal.Decimal{}, err
	}
	lower, err := SinSeries(n-1, x)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return add(t, lower, fmt.Sprintf("sin(%d, %s)", n, x))
}
