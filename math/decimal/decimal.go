package decimal

import (
	"github.com/govalues/decimal"
)

// Comparisons ignore scale: 1.0 and 1.000 are equal.

func EQ(a, b decimal.Decimal) bool {
	return a.Cmp(b) == 0
}

func GT(a, b decimal.Decimal) bool {
	return a.Cmp(b) > 0
}

func LT(a, b decimal.Decimal) bool {
	return a.Cmp(b) < 0
}

func GTE(a, b decimal.Decimal) bool {
	return a.Cmp(b) >= 0
}

func LTE(a, b decimal.Decimal) bool {
	return a.Cmp(b) <= 0
}

// Within reports whether |a-b| <= tol. A difference too large to represent is never within tol.
func Within(a, b, tol decimal.Decimal) bool {
	d, err := a.Sub(b)
	if err != nil {
		return false
	}
	return LTE(d.Abs(), tol)
}
