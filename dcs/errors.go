package dcs

import (
	"errors"
	"fmt"
)

// Error kinds raised while building or grounding a tree. None of them is
// transient: each one points at a bug in tree construction or an
// incomplete world model.
var (
	// ErrMalformedTree: a relation needs a store, column or child that is absent
	ErrMalformedTree = errors.New("malformed tree")

	// ErrUnresolvedPredicate: a predicate is neither a world entry nor a usable function
	ErrUnresolvedPredicate = errors.New("unresolved predicate")

	// ErrTypeContract: an edge was built from a nil relation, nil child or a cycle
	ErrTypeContract = errors.New("type contract violation")
)

// GroundingError identifies the node (and relation, when one was being
// applied) where grounding failed.
type GroundingError struct {
	Node     string // String() of the failing node
	Relation string // String() of the relation, empty for base resolution
	Err      error
}

// Error implements the error interface.
func (e *GroundingError) Error() string {
	if e.Relation != "" {
		return fmt.Sprintf("grounding %s via %s: %v", e.Node, e.Relation, e.Err)
	}
	return fmt.Sprintf("grounding %s: %v", e.Node, e.Err)
}

// Unwrap exposes the underlying error kind to errors.Is.
func (e *GroundingError) Unwrap() error {
	return e.Err
}
