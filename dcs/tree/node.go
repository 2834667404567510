// Package tree implements DCS trees: nodes holding a predicate, ordered
// (relation, child) edges, and the bottom-up grounding that turns a tree
// into a denotation.
//
// Trees are built by hand:
//
//	city := tree.New("city")
//	city.Add(tree.Join(1, 1), tree.New("major"))
//	loc := tree.New("loc").WithArity(2)
//	loc.Add(tree.Join(2, 1), tree.New("ca"))
//	city.Add(tree.Join(1, 1), loc)
//	d, err := city.Ground(w)
//
// Nodes are identified by pointer identity, never by predicate name: two
// "state" nodes in a self-join are different nodes.
package tree

import (
	"fmt"
	"strings"

	"github.com/wbrown/janus-dcs/dcs"
	"github.com/wbrown/janus-dcs/dcs/functions"
	"github.com/wbrown/janus-dcs/dcs/world"
)

// Predicate is what a node asserts about its column 1 entity: either a
// name resolved against the World, or a functions.Function.
type Predicate interface {
	Name() string
}

// Named is a predicate resolved by name against the World.
type Named string

func (n Named) Name() string { return string(n) }

// Edge connects a node to a child through a relation.
type Edge struct {
	Relation Relation
	Child    *Node
}

// state is the per-pass grounding state of a node
type state int

const (
	unevaluated state = iota
	evaluating
	evaluated
)

// Node is a DCS tree node.
type Node struct {
	predicate Predicate // nil for the null node
	arity     int
	edges     []Edge

	// Per-pass state; reset at the start of every grounding pass.
	state      state
	denotation *dcs.Denotation
	stores     []*Store
}

// New creates a node for a predicate resolved against the World.
func New(name string) *Node {
	return &Node{predicate: Named(name), arity: 1}
}

// NewFunc creates a node for a callable predicate. Its arity is the
// function's inputs plus the computed column.
func NewFunc(fn functions.Function) *Node {
	return &Node{predicate: fn, arity: fn.Arity() + 1}
}

// NewNull creates a node without a predicate. It grounds to the universal
// denotation, so its relations alone decide its value.
func NewNull() *Node {
	return &Node{arity: 1}
}

// WithArity sets the declared arity (column count kept by projections).
func (n *Node) WithArity(arity int) *Node {
	if arity < 1 {
		panic(fmt.Sprintf("%v: arity must be positive, got %d", dcs.ErrTypeContract, arity))
	}
	n.arity = arity
	return n
}

// AddChild appends an edge. Nil relations (typed or not), nil children
// and edges that would create a cycle violate the tree contract.
func (n *Node) AddChild(relation Relation, child *Node) error {
	if isNilRelation(relation) {
		return fmt.Errorf("%w: nil relation added to %s", dcs.ErrTypeContract, n)
	}
	if child == nil {
		return fmt.Errorf("%w: nil child added to %s via %s", dcs.ErrTypeContract, n, relation)
	}
	if child == n || child.reaches(n) {
		return fmt.Errorf("%w: adding %s under %s creates a cycle", dcs.ErrTypeContract, child, n)
	}
	n.edges = append(n.edges, Edge{Relation: relation, Child: child})
	return nil
}

// Add is AddChild for hand-built trees: it returns n for chaining and
// panics on a contract violation, which is a construction bug.
func (n *Node) Add(relation Relation, child *Node) *Node {
	if err := n.AddChild(relation, child); err != nil {
		panic(err)
	}
	return n
}

// isNilRelation catches both the nil interface and nil relation pointers
func isNilRelation(r Relation) bool {
	switch rel := r.(type) {
	case nil:
		return true
	case *JoinRelation:
		return rel == nil
	case *AggregateRelation:
		return rel == nil
	case *MarkRelation:
		return rel == nil
	case *ExecuteRelation:
		return rel == nil
	}
	return false
}

// reaches reports whether target is n or one of its descendants
func (n *Node) reaches(target *Node) bool {
	if n == target {
		return true
	}
	for _, e := range n.edges {
		if e.Child.reaches(target) {
			return true
		}
	}
	return false
}

// Predicate returns the node's predicate (nil for the null node)
func (n *Node) Predicate() Predicate { return n.predicate }

// Arity returns the declared arity
func (n *Node) Arity() int { return n.arity }

// Edges returns a copy of the node's edges in evaluation order
func (n *Node) Edges() []Edge {
	out := make([]Edge, len(n.edges))
	copy(out, n.edges)
	return out
}

// Children returns the child nodes in edge order
func (n *Node) Children() []*Node {
	children := make([]*Node, len(n.edges))
	for i, e := range n.edges {
		children[i] = e.Child
	}
	return children
}

// IsLeaf returns true if the node has no edges
func (n *Node) IsLeaf() bool {
	return len(n.edges) == 0
}

// IsGrounded returns true once the node has been evaluated in the current pass
func (n *Node) IsGrounded() bool {
	return n.state == evaluated
}

// Denotation returns the node's current denotation, nil while ungrounded.
func (n *Node) Denotation() *dcs.Denotation {
	return n.denotation
}

// Stores returns the mark stores recorded on this node in edge order.
// A node with two marks of the same kind has one store per mark.
// It is nil unless the node carries a mark relation.
func (n *Node) Stores() []*Store {
	if len(n.stores) == 0 {
		return nil
	}
	out := make([]*Store, len(n.stores))
	copy(out, n.stores)
	return out
}

// Ground evaluates the tree rooted at n against w with default options.
func (n *Node) Ground(w world.World) (*dcs.Denotation, error) {
	return NewGrounder(w, GroundOptions{}).Ground(n)
}

// name returns the predicate name, "null" for the null node
func (n *Node) name() string {
	if n.predicate == nil {
		return "null"
	}
	return n.predicate.Name()
}

// reset puts every node of the tree back to unevaluated and returns the
// number of distinct nodes.
func (n *Node) reset() int {
	seen := make(map[*Node]bool)
	var walk func(*Node)
	walk = func(m *Node) {
		if seen[m] {
			return
		}
		seen[m] = true
		m.state = unevaluated
		m.denotation = nil
		m.stores = nil
		for _, e := range m.edges {
			walk(e.Child)
		}
	}
	walk(n)
	return len(seen)
}

// preorder visits n and its descendants, self first
func (n *Node) preorder(visit func(*Node)) {
	visit(n)
	for _, e := range n.edges {
		e.Child.preorder(visit)
	}
}

// String renders the tree as <predicate;relation:<child>:...>
func (n *Node) String() string {
	if n.IsLeaf() {
		return "<" + n.name() + ">"
	}
	parts := make([]string, len(n.edges))
	for i, e := range n.edges {
		parts[i] = fmt.Sprintf("%s:%s", e.Relation, e.Child)
	}
	return "<" + n.name() + ";" + strings.Join(parts, ":") + ">"
}
