package functions

import (
	"fmt"
	"sort"
	"strings"
)

// Registry tracks the functions that may appear as tree predicates.
// This allows tree builders to fail on an unknown name before grounding.
type Registry struct {
	functions map[string]Function
}

// Default registry - populated with the built-ins at package load
var Default = NewRegistry()

// NewRegistry creates a registry holding the built-in functions
func NewRegistry() *Registry {
	r := &Registry{functions: make(map[string]Function)}

	// Aggregates
	r.Register(Count)

	// Superlatives
	r.Register(ArgMax)
	r.Register(ArgMin)

	// Generalized quantifiers
	r.Register(Some)
	r.Register(Every)
	r.Register(No)
	r.Register(Most)

	// Comparatives
	r.Register(More)
	r.Register(Less)

	return r
}

// Register adds a function, replacing any function with the same name
func (r *Registry) Register(fn Function) {
	r.functions[fn.Name()] = fn
}

// Lookup returns the function registered under name
func (r *Registry) Lookup(name string) (Function, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}

// MustLookup is Lookup for hand-built trees; it panics on an unknown name.
func (r *Registry) MustLookup(name string) Function {
	fn, ok := r.functions[name]
	if !ok {
		panic(fmt.Sprintf("unknown function: %s", name))
	}
	return fn
}

// Validate checks if a call with argCount inputs is valid
func (r *Registry) Validate(name string, argCount int) error {
	fn, ok := r.functions[name]
	if !ok {
		return fmt.Errorf("unknown function: %s (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	if argCount != fn.Arity() {
		return fmt.Errorf("function %s requires %d arguments, got %d", name, fn.Arity(), argCount)
	}
	return nil
}

// Names returns the registered function names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
