package dcs

import (
	"fmt"
	"strings"
)

// CompareValues compares two values and returns:
//
//	-1 if left < right
//	 0 if left == right
//	 1 if left > right
//
// Numbers compare across int64/float64. Reified sets compare by size first
// and then by their sorted tuples. Values of different kinds are ordered
// by kind so sorting mixed columns is still deterministic.
func CompareValues(left, right Value) int {
	left, right = Normalize(left), Normalize(right)

	// Handle nil
	if left == nil && right == nil {
		return 0
	}
	if left == nil {
		return -1
	}
	if right == nil {
		return 1
	}

	if IsNumeric(left) && IsNumeric(right) {
		return compareNumeric(left, right)
	}

	lk, rk := kindRank(left), kindRank(right)
	if lk != rk {
		return compareInts(lk, rk)
	}

	switch l := left.(type) {
	case string:
		return strings.Compare(l, right.(string))
	case bool:
		r := right.(bool)
		if !l && r {
			return -1
		} else if l && !r {
			return 1
		}
		return 0
	case *Denotation:
		return compareSets(l, right.(*Denotation))
	}

	// Fall back to string comparison for unknown types
	return strings.Compare(fmt.Sprintf("%v", left), fmt.Sprintf("%v", right))
}

// kindRank orders value kinds: numbers < strings < bools < sets < unknown
func kindRank(v Value) int {
	switch v.(type) {
	case int64, float64:
		return 0
	case string:
		return 1
	case bool:
		return 2
	case *Denotation:
		return 3
	}
	return 4
}

// compareNumeric compares two normalized numeric values
func compareNumeric(left, right Value) int {
	if l, ok := left.(int64); ok {
		if r, ok := right.(int64); ok {
			return compareInt64s(l, r)
		}
	}
	lf, _ := AsFloat(left)
	rf, _ := AsFloat(right)
	return compareFloats(lf, rf)
}

func compareSets(a, b *Denotation) int {
	if a == b {
		return 0
	}
	if c := compareInts(a.Size(), b.Size()); c != 0 {
		return c
	}
	as, bs := a.Sorted(), b.Sorted()
	for i := range as {
		if c := CompareTuples(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return 0
}

// CompareTuples orders tuples lexicographically by column, shorter first on a tie.
func CompareTuples(a, b Tuple) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := CompareValues(a[i], b[i]); c != 0 {
			return c
		}
	}
	return compareInts(len(a), len(b))
}

func compareInts(a, b int) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// compareInt64s compares two int64 values
func compareInt64s(a, b int64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// compareFloats compares two float64 values
func compareFloats(a, b float64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// ValuesEqual checks if two values are equal.
// Unlike CompareValues it does not treat int64(4) and float64(4) as equal:
// join keys must agree on kind as well as magnitude.
func ValuesEqual(a, b Value) bool {
	a, b = Normalize(a), Normalize(b)

	// Reified sets are equal when they hold the same tuples
	if da, ok := a.(*Denotation); ok {
		if db, ok := b.(*Denotation); ok {
			return da.Equal(db)
		}
		return false
	}
	if _, ok := b.(*Denotation); ok {
		return false
	}

	switch a.(type) {
	case nil, int64, float64, string, bool:
		return a == b
	}

	// Fall back to string comparison for unknown types
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
