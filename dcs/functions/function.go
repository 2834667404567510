// Package functions provides the callable predicates of DCS trees: scalar
// and aggregate functions (count, argmax), generalized quantifiers (some,
// every, no, most) and comparatives (more, less).
package functions

import (
	"fmt"

	"github.com/wbrown/janus-dcs/dcs"
)

// Function is a callable predicate. A node holding a Function extends each
// incoming tuple with the result of Call applied to that tuple's columns.
type Function interface {
	Name() string
	// Arity is the number of input columns; the node built from the
	// function has Arity()+1 columns.
	Arity() int
	Call(args ...dcs.Value) (dcs.Value, error)
}

// Selector is implemented by functions that can be invoked by a Compare
// mark: they pick rows out of a marked node's base denotation.
type Selector interface {
	Select(base *dcs.Denotation) (*dcs.Denotation, error)
}

// Quantifier is implemented by generalized quantifiers invoked by a
// Quantify mark.
type Quantifier interface {
	Holds(restrictor, scope *dcs.Denotation) bool
}

// Func adapts a plain Go function to the Function interface.
type Func struct {
	name  string
	arity int
	fn    func(args []dcs.Value) (dcs.Value, error)
}

// NewFunc creates a function predicate with a fixed number of inputs
func NewFunc(name string, arity int, fn func(args []dcs.Value) (dcs.Value, error)) *Func {
	return &Func{name: name, arity: arity, fn: fn}
}

func (f *Func) Name() string { return f.name }
func (f *Func) Arity() int   { return f.arity }

// Call checks the argument count before invoking the function
func (f *Func) Call(args ...dcs.Value) (dcs.Value, error) {
	if len(args) != f.arity {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", f.name, f.arity, len(args))
	}
	return f.fn(args)
}

func (f *Func) String() string { return f.name }

// Count is count(set) → |set|
var Count = NewFunc("count", 1, func(args []dcs.Value) (dcs.Value, error) {
	set, err := dcs.AsSet(args[0])
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	return int64(set.Size()), nil
})
