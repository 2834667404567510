package tree

import (
	"errors"
	"fmt"
	"time"

	"github.com/wbrown/janus-dcs/dcs"
	"github.com/wbrown/janus-dcs/dcs/annotations"
	"github.com/wbrown/janus-dcs/dcs/functions"
	"github.com/wbrown/janus-dcs/dcs/world"
)

// GroundOptions configures a Grounder
type GroundOptions struct {
	// Handler receives annotation events as they happen. Setting it
	// enables annotations.
	Handler annotations.Handler

	// EnableAnnotations records events even without a handler, so they
	// can be inspected through Collector().
	EnableAnnotations bool

	// EnableDebugLogging prints every node denotation to stdout
	EnableDebugLogging bool
}

// Grounder evaluates DCS trees against a World.
//
// CONCURRENCY: grounding writes per-pass state into the nodes, so a tree
// must not be grounded by two goroutines at once. Separate trees can be
// grounded concurrently against the same read-only World.
type Grounder struct {
	world     world.World
	options   GroundOptions
	collector *annotations.Collector
}

// NewGrounder creates a grounder. A nil world resolves no names, which is
// enough for trees made only of functions and null nodes.
func NewGrounder(w world.World, opts GroundOptions) *Grounder {
	if w == nil {
		w = world.NewMemory()
	}
	g := &Grounder{world: w, options: opts}
	if opts.Handler != nil || opts.EnableAnnotations {
		g.collector = annotations.NewCollector(opts.Handler)
	}
	return g
}

// Collector returns the annotation collector, nil when annotations are off
func (g *Grounder) Collector() *annotations.Collector {
	return g.collector
}

// Ground evaluates the tree rooted at root from scratch and returns its
// denotation. Every node is reset first, so repeated calls against an
// unchanged World return equal denotations.
func (g *Grounder) Ground(root *Node) (*dcs.Denotation, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil root", dcs.ErrTypeContract)
	}

	start := time.Now()
	count := root.reset()
	if g.collector != nil {
		g.collector.Add(annotations.Event{
			Name:  annotations.GroundBegin,
			Start: start,
			End:   start,
			Data: map[string]interface{}{
				"root":        root.String(),
				"nodes.count": count,
			},
		})
	}

	d, err := g.ground(root)

	if g.collector != nil {
		data := map[string]interface{}{
			"root":    root.String(),
			"success": err == nil,
		}
		if err != nil {
			data["error"] = err.Error()
		} else {
			data["tuples.count"] = d.Size()
		}
		g.collector.AddTiming(annotations.GroundComplete, start, data)
	}
	return d, err
}

// ground evaluates one node post-order: children, base denotation, then
// the edges folded left to right.
func (g *Grounder) ground(n *Node) (*dcs.Denotation, error) {
	switch n.state {
	case evaluated:
		return n.denotation, nil
	case evaluating:
		return nil, g.fail(n, nil, fmt.Errorf("%w: node reached again while it is being grounded", dcs.ErrMalformedTree))
	}
	n.state = evaluating

	for _, e := range n.edges {
		if _, err := g.ground(e.Child); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	base, source, err := g.resolve(n)
	if err != nil {
		return nil, g.fail(n, nil, err)
	}
	n.denotation = base

	if g.collector != nil {
		g.collector.AddTiming(annotations.NodeBase, start, map[string]interface{}{
			"node":         n.name(),
			"source":       source,
			"tuples.count": base.Size(),
		})
	}

	for _, e := range n.edges {
		next, err := e.Relation.Apply(g, n, e.Child)
		if err != nil {
			return nil, g.fail(n, e.Relation, err)
		}
		n.denotation = next
	}

	arity, err := n.denotation.Arity()
	if err != nil {
		return nil, g.fail(n, nil, err)
	}
	n.state = evaluated

	if g.collector != nil {
		g.collector.AddTiming(annotations.NodeGrounded, start, map[string]interface{}{
			"node":         n.name(),
			"arity":        arity,
			"tuples.count": n.denotation.Size(),
		})
	}
	if g.options.EnableDebugLogging {
		fmt.Printf("[ground] %s → %s\n", n, n.denotation)
	}
	return n.denotation, nil
}

// resolve computes the node's own denotation before any relation applies
func (g *Grounder) resolve(n *Node) (*dcs.Denotation, string, error) {
	if n.predicate == nil {
		return dcs.Universal(), "universal", nil
	}

	if produce, ok := g.world.Lookup(n.predicate.Name()); ok {
		d, err := produce()
		if err != nil {
			return nil, "", fmt.Errorf("world lookup %q: %w", n.predicate.Name(), err)
		}
		if d == nil {
			return nil, "", fmt.Errorf("%w: world returned no denotation for %q", dcs.ErrUnresolvedPredicate, n.predicate.Name())
		}
		return d, "world", nil
	}

	fn, ok := n.predicate.(functions.Function)
	if !ok {
		return nil, "", fmt.Errorf("%w: %q is not in the world", dcs.ErrUnresolvedPredicate, n.predicate.Name())
	}

	if n.IsLeaf() {
		// Operators wait for a mark/execute pair to invoke them
		switch fn.(type) {
		case functions.Selector, functions.Quantifier:
			return dcs.Universal(), "operator", nil
		}
		return nil, "", fmt.Errorf("%w: function %s has no input", dcs.ErrUnresolvedPredicate, fn.Name())
	}

	d, err := apply(fn, n.edges[0].Child.denotation)
	if err != nil {
		return nil, "", err
	}
	return d, "function", nil
}

// apply extends every input tuple with fn's result
func apply(fn functions.Function, input *dcs.Denotation) (*dcs.Denotation, error) {
	if input.IsUniversal() {
		return nil, fmt.Errorf("%w: function %s applied to the universal denotation", dcs.ErrMalformedTree, fn.Name())
	}

	b := dcs.NewBuilder(input.Size())
	for _, t := range input.Tuples() {
		if len(t) != fn.Arity() {
			return nil, fmt.Errorf("%w: function %s takes %d columns, input tuple %s has %d",
				dcs.ErrMalformedTree, fn.Name(), fn.Arity(), t, len(t))
		}
		v, err := fn.Call(t...)
		if err != nil {
			return nil, fmt.Errorf("%s%s: %w", fn.Name(), t, err)
		}
		b.Add(t.Extend(v))
	}
	return b.Denotation(), nil
}

// fail wraps err with the node and relation it came from, once
func (g *Grounder) fail(n *Node, rel Relation, err error) error {
	var ge *dcs.GroundingError
	if errors.As(err, &ge) {
		return err
	}

	ge = &dcs.GroundingError{Node: n.String(), Err: err}
	if rel != nil {
		ge.Relation = rel.String()
	}

	if g.collector != nil {
		data := map[string]interface{}{
			"node":  n.name(),
			"error": err.Error(),
		}
		if rel != nil {
			data["relation"] = rel.String()
		}
		now := time.Now()
		g.collector.Add(annotations.Event{Name: annotations.ErrorGrounding, Start: now, End: now, Data: data})
	}
	return ge
}
