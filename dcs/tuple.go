package dcs

import (
	"strings"
)

// Tuple is an ordered, fixed-length sequence of values.
// Tuples are treated as immutable once they are part of a Denotation.
type Tuple []Value

// T builds a normalized tuple from loose Go values.
func T(values ...Value) Tuple {
	t := make(Tuple, len(values))
	for i, v := range values {
		t[i] = Normalize(v)
	}
	return t
}

// Equal compares tuples structurally.
func (t Tuple) Equal(other Tuple) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if !ValuesEqual(t[i], other[i]) {
			return false
		}
	}
	return true
}

// Prefix returns the first n columns, or the whole tuple if it is shorter.
func (t Tuple) Prefix(n int) Tuple {
	if n >= len(t) {
		return t
	}
	return t[:n]
}

// Extend returns a new tuple with v appended.
func (t Tuple) Extend(v Value) Tuple {
	out := make(Tuple, len(t), len(t)+1)
	copy(out, t)
	return append(out, Normalize(v))
}

// String renders the tuple the way it is usually written: (a, b)
func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = formatValue(v)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
