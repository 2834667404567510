package tree

import (
	"fmt"
	"strings"
	"time"

	"github.com/wbrown/janus-dcs/dcs"
	"github.com/wbrown/janus-dcs/dcs/annotations"
	"github.com/wbrown/janus-dcs/dcs/functions"
)

// MarkKind says how a marked node is evaluated once it is executed.
type MarkKind int

const (
	// MarkExtract substitutes the mark child's denotation (relative clauses).
	MarkExtract MarkKind = iota
	// MarkCompare selects rows of the base denotation (superlatives, comparatives).
	MarkCompare
	// MarkQuantify tests a generalized quantifier (quantifiers, negation).
	MarkQuantify
)

func (k MarkKind) String() string {
	switch k {
	case MarkExtract:
		return "E"
	case MarkCompare:
		return "C"
	case MarkQuantify:
		return "Q"
	}
	return fmt.Sprintf("MarkKind(%d)", int(k))
}

// Store is the deferred computation recorded by a mark relation on the
// node that owns the mark edge. An Execute relation higher in the tree
// retrieves it and applies it there.
type Store struct {
	Kind MarkKind
	// Base is the owner's denotation before the mark was applied.
	Base *dcs.Denotation
	// Child is the mark child's denotation.
	Child *dcs.Denotation
	// Operator is the mark child itself; Compare and Quantify read its predicate.
	Operator *Node

	owner    *Node
	executed bool
}

// Owner returns the marked node
func (s *Store) Owner() *Node { return s.owner }

// Executed reports whether an Execute relation has consumed the store
func (s *Store) Executed() bool { return s.executed }

// MarkRelation defers its child: it records a Store on the parent and
// leaves the parent's denotation unchanged.
type MarkRelation struct {
	Kind MarkKind
}

// Extract marks a node for extraction
func Extract() *MarkRelation { return &MarkRelation{Kind: MarkExtract} }

// Compare marks a node for a superlative or comparative
func Compare() *MarkRelation { return &MarkRelation{Kind: MarkCompare} }

// Quantify marks a node for quantification or negation
func Quantify() *MarkRelation { return &MarkRelation{Kind: MarkQuantify} }

func (m *MarkRelation) String() string { return m.Kind.String() }

// Formula renders the mark as Kind(owner, operator)
func (m *MarkRelation) Formula(parentVar, childVar string) string {
	return fmt.Sprintf("%s(%s, %s)", m.Kind, parentVar, childVar)
}

// Apply implements Relation
func (m *MarkRelation) Apply(g *Grounder, parent, child *Node) (*dcs.Denotation, error) {
	start := time.Now()
	if child.denotation == nil {
		return nil, fmt.Errorf("%w: mark child %s read before it was grounded", dcs.ErrMalformedTree, child)
	}

	parent.stores = append(parent.stores, &Store{
		Kind:     m.Kind,
		Base:     parent.denotation,
		Child:    child.denotation,
		Operator: child,
		owner:    parent,
	})

	if c := g.Collector(); c != nil {
		c.AddTiming(annotations.RelationMark, start, map[string]interface{}{
			"node":       parent.name(),
			"kind":       m.Kind.String(),
			"base.size":  parent.denotation.Size(),
			"child.size": child.denotation.Size(),
		})
	}
	return parent.denotation, nil
}

// ExecuteRelation invokes marked descendants of its child. Indices are
// 1-based positions in the list of not-yet-executed stores of the child
// subtree, in preorder; no indices means every pending store in order.
type ExecuteRelation struct {
	Indices []int
}

// Execute creates an execute relation for the given store indices
func Execute(indices ...int) *ExecuteRelation {
	return &ExecuteRelation{Indices: indices}
}

func (x *ExecuteRelation) String() string {
	if len(x.Indices) == 0 {
		return "x"
	}
	parts := make([]string, len(x.Indices))
	for i, idx := range x.Indices {
		parts[i] = fmt.Sprint(idx)
	}
	return "x_" + strings.Join(parts, "")
}

// Formula renders the execution point
func (x *ExecuteRelation) Formula(parentVar, childVar string) string {
	return fmt.Sprintf("%s(%s, %s)", x, parentVar, childVar)
}

// pendingStores lists the unexecuted stores below (and including) n in
// preorder. A node shared by several paths contributes its stores once,
// at its first visit.
func pendingStores(n *Node) []*Store {
	var pending []*Store
	seen := make(map[*Node]bool)
	n.preorder(func(m *Node) {
		if seen[m] {
			return
		}
		seen[m] = true
		for _, s := range m.stores {
			if !s.executed {
				pending = append(pending, s)
			}
		}
	})
	return pending
}

// Apply implements Relation
func (x *ExecuteRelation) Apply(g *Grounder, parent, child *Node) (*dcs.Denotation, error) {
	start := time.Now()
	if child.denotation == nil {
		return nil, fmt.Errorf("%w: execute child %s read before it was grounded", dcs.ErrMalformedTree, child)
	}

	selected, err := x.selectStores(child)
	if err != nil {
		return nil, err
	}

	current := parent.denotation
	for _, s := range selected {
		current, err = applyStore(s, current, child, parent.arity)
		if err != nil {
			return nil, err
		}
		s.executed = true
	}

	if c := g.Collector(); c != nil {
		c.AddTiming(annotations.RelationExecute, start, map[string]interface{}{
			"node":            parent.name(),
			"relation":        x.String(),
			"stores.executed": len(selected),
			"result.size":     current.Size(),
		})
	}
	return current, nil
}

// selectStores resolves the indices against the pending stores
func (x *ExecuteRelation) selectStores(child *Node) ([]*Store, error) {
	pending := pendingStores(child)
	if len(x.Indices) == 0 {
		if len(pending) == 0 {
			return nil, fmt.Errorf("%w: %s found no marked node under %s", dcs.ErrMalformedTree, x, child)
		}
		return pending, nil
	}

	selected := make([]*Store, 0, len(x.Indices))
	used := make(map[int]bool, len(x.Indices))
	for _, idx := range x.Indices {
		if idx < 1 || idx > len(pending) {
			return nil, fmt.Errorf("%w: %s has no store at index %d (%d pending under %s)",
				dcs.ErrMalformedTree, x, idx, len(pending), child)
		}
		if used[idx] {
			return nil, fmt.Errorf("%w: %s executes store %d twice", dcs.ErrMalformedTree, x, idx)
		}
		used[idx] = true
		selected = append(selected, pending[idx-1])
	}
	return selected, nil
}

// applyStore evaluates one deferred computation and folds it into current
func applyStore(s *Store, current *dcs.Denotation, child *Node, arity int) (*dcs.Denotation, error) {
	switch s.Kind {
	case MarkExtract:
		return join(current, s.Child, 1, 1, arity)

	case MarkCompare:
		sel, ok := s.Operator.predicate.(functions.Selector)
		if !ok {
			return nil, fmt.Errorf("%w: compare mark on %s needs a selector, got %s",
				dcs.ErrMalformedTree, s.owner, s.Operator)
		}
		selected, err := sel.Select(s.Base)
		if err != nil {
			return nil, err
		}
		return join(current, selected, 1, 1, arity)

	case MarkQuantify:
		q, ok := s.Operator.predicate.(functions.Quantifier)
		if !ok {
			return nil, fmt.Errorf("%w: quantify mark on %s needs a quantifier, got %s",
				dcs.ErrMalformedTree, s.owner, s.Operator)
		}
		restrictor, err := s.Base.Column(1)
		if err != nil {
			return nil, err
		}
		scope, err := child.denotation.Column(1)
		if err != nil {
			return nil, err
		}
		holds := q.Holds(restrictor, scope)
		switch {
		case current.IsUniversal():
			return dcs.Truth(holds), nil
		case holds:
			return current, nil
		default:
			return dcs.Empty(), nil
		}
	}
	return nil, fmt.Errorf("%w: unknown mark kind %s", dcs.ErrMalformedTree, s.Kind)
}
