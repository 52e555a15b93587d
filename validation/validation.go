package validation

import (
	"fmt"
	"math"

	"github.com/dora-network/series-utils/errors"
)

// ValidateOneOf checks that value is one of the allowed values, returning notFound otherwise.
func ValidateOneOf[T comparable](value T, notFound error, allowed ...T) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return notFound
}

// ValidateOrder checks that a series order does not exceed limit.
func ValidateOrder(order, limit uint) error {
	if order > limit {
		return errors.Wrap(errors.InvalidInputError, errors.ErrOrderTooLarge, fmt.Sprintf("order %d, max %d", order, limit))
	}
	return nil
}

// ValidateArgument checks that a series argument is a finite number.
func ValidateArgument(x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return errors.ErrArgumentNotFinite
	}
	return nil
}
