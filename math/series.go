package math

// MaxFactorialOrder is the largest n for which Factorial(n) fits in a uint64.
// Factorial does not check this bound.
const MaxFactorialOrder = 20

/*
	Truncated Maclaurin series, each built by peeling off the highest order term
	and adding it to the truncation one order below. Every order n sums exactly
	n+1 terms, indexed 0..n.

		ExpSeries(n, x) = sum x^i / i!                       i = 0..n
		CosSeries(n, x) = sum (-1)^i x^(2i) / (2i)!          i = 0..n
		SinSeries(n, x) = sum (-1)^i x^(2i+1) / (2i+1)!      i = 0..n

	Recursion depth is linear in n, callers exposing the order to users should bound it.
*/

// Power returns x^n by repeated multiplication.
func Power(n uint, x float64) float64 {
	if n == 0 {
		return 1
	}
	return x * Power(n-1, x)
}

// Factorial returns n!. Results for n > MaxFactorialOrder wrap around.
func Factorial(n uint) uint64 {
	if n == 0 {
		return 1
	}
	return uint64(n) * Factorial(n-1)
}

// factorialF is n! in floating point. The series divide by it instead of Factorial
// so orders past MaxFactorialOrder keep converging rather than dividing by a wrapped value.
func factorialF(n uint) float64 {
	if n == 0 {
		return 1
	}
	return float64(n) * factorialF(n-1)
}

// sign is +1 for an even term index and -1 for an odd one.
func sign(i uint) float64 {
	if i%2 == 0 {
		return 1
	}
	return -1
}

// ExpSeries is the degree n Maclaurin approximation of e^x.
func ExpSeries(n uint, x float64) float64 {
	if n == 0 {
		return 1
	}
	return Power(n, x)/factorialF(n) + ExpSeries(n-1, x)
}

// CosSeries is the degree 2n Maclaurin approximation of cos(x).
func CosSeries(n uint, x float64) float64 {
	if n == 0 {
		return 1
	}
	return sign(n)*Power(2*n, x)/factorialF(2*n) + CosSeries(n-1, x)
}

// SinSeries is the degree 2n+1 Maclaurin approximation of sin(x).
func SinSeries(n uint, x float64) float64 {
	if n == 0 {
		return x
	}
	return sign(n)*Power(2*n+1, x)/factorialF(2*n+1) + SinSeries(n-1, x)
}
