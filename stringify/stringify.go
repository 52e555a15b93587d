// Package stringify converts values to text. Only types with a known conversion,
// or that implement Texter, are accepted. Everything else is reported as an
// errors.UnsupportedTypeError instead of being formatted with a default verb.
package stringify

import (
	"strconv"
	"strings"

	"github.com/govalues/decimal"

	"github.com/dora-network/series-utils/errors"
)

// floatDecimals is the number of digits written after the point for float64 values.
const floatDecimals = 6

// Texter is implemented by types that know how to render themselves as text.
type Texter interface {
	Text() (string, error)
}

// Tuple groups heterogeneous values. Its text is the Join of its elements,
// so nested tuples flatten into the same space separated output.
type Tuple []any

// Text implements Texter.
func (t Tuple) Text() (string, error) {
	return Join(t...)
}

// Text converts a single value to text.
func Text(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', floatDecimals, 64), nil
	case decimal.Decimal:
		return x.String(), nil
	case Texter:
		return x.Text()
	default:
		return "", errors.NewUnsupportedType(TypeName(v))
	}
}

// Join converts every argument and joins them with single spaces.
// The first argument that cannot be converted aborts the join.
func Join(args ...any) (string, error) {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		s, err := Text(arg)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " "), nil
}
