package dcs

import (
	"fmt"
)

// Value represents a single column of a tuple.
// Like janus values we use interface{} with direct Go types.
type Value interface{}

// Valid value types:
// - string
// - int64
// - float64
// - bool
// - *Denotation (a reified set, produced by Aggregate)

// Helper functions for creating typed values
func String(s string) Value   { return s }
func Int(i int64) Value       { return i }
func Float(f float64) Value   { return f }
func Bool(b bool) Value       { return b }
func Set(d *Denotation) Value { return d }

// Normalize folds the loose Go numeric types into int64 and float64 so that
// equality and hashing agree regardless of how a tuple was written.
func Normalize(v Value) Value {
	switch val := v.(type) {
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case float32:
		return float64(val)
	}
	return v
}

// IsNumeric reports whether v is an int64 or float64 (after normalization).
func IsNumeric(v Value) bool {
	switch Normalize(v).(type) {
	case int64, float64:
		return true
	}
	return false
}

// AsFloat converts a numeric value to float64.
func AsFloat(v Value) (float64, error) {
	switch val := Normalize(v).(type) {
	case int64:
		return float64(val), nil
	case float64:
		return val, nil
	}
	return 0, fmt.Errorf("value %v (%T) is not numeric", v, v)
}

// AsSet returns the reified denotation held by v.
func AsSet(v Value) (*Denotation, error) {
	if d, ok := v.(*Denotation); ok && d != nil {
		return d, nil
	}
	return nil, fmt.Errorf("value %v (%T) is not a set", v, v)
}

// formatValue renders a value for tuple strings
func formatValue(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return val
	case *Denotation:
		return fmt.Sprintf("{%d tuples}", val.Size())
	default:
		return fmt.Sprintf("%v", val)
	}
}
