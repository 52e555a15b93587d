package stringify

import "reflect"

// TypeName returns the readable name of v's dynamic type, e.g. "map[string]int"
// or "*url.URL". Named types keep their package qualifier.
func TypeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
