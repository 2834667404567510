package tree

import (
	"fmt"
	"time"

	"github.com/wbrown/janus-dcs/dcs"
	"github.com/wbrown/janus-dcs/dcs/annotations"
)

// Relation combines a parent's current denotation with a grounded
// child's denotation into the parent's next denotation. Relations read
// the child's denotation but never modify it.
type Relation interface {
	Apply(g *Grounder, parent, child *Node) (*dcs.Denotation, error)
	String() string
}

// JoinRelation keeps the parent tuples whose column ParentIndex equals
// column ChildIndex of some child tuple, projected to the parent's arity.
// Both indices are 1-based.
type JoinRelation struct {
	ParentIndex int
	ChildIndex  int
}

// Join creates an equality join between parent column p and child column c (1-based).
func Join(p, c int) *JoinRelation {
	return &JoinRelation{ParentIndex: p, ChildIndex: c}
}

func (j *JoinRelation) String() string {
	return fmt.Sprintf("%d/%d", j.ParentIndex, j.ChildIndex)
}

// Formula renders the join constraint between two bound variables
func (j *JoinRelation) Formula(parentVar, childVar string) string {
	if j.ParentIndex == 1 && j.ChildIndex == 1 {
		return fmt.Sprintf("%s = %s", parentVar, childVar)
	}
	return fmt.Sprintf("%s.%d = %s.%d", parentVar, j.ParentIndex, childVar, j.ChildIndex)
}

// Apply implements Relation
func (j *JoinRelation) Apply(g *Grounder, parent, child *Node) (*dcs.Denotation, error) {
	if j.ParentIndex < 1 || j.ChildIndex < 1 {
		return nil, fmt.Errorf("%w: join indices are 1-based, got %s", dcs.ErrMalformedTree, j)
	}
	if child.denotation == nil {
		return nil, fmt.Errorf("%w: child %s read before it was grounded", dcs.ErrMalformedTree, child)
	}

	start := time.Now()
	result, err := join(parent.denotation, child.denotation, j.ParentIndex, j.ChildIndex, parent.arity)
	if err != nil {
		return nil, err
	}

	if c := g.Collector(); c != nil {
		c.AddTiming(annotations.RelationJoin, start, map[string]interface{}{
			"node":        parent.name(),
			"relation":    j.String(),
			"parent.size": parent.denotation.Size(),
			"child.size":  child.denotation.Size(),
			"result.size": result.Size(),
		})
	}
	return result, nil
}

// join is the equi-join + projection shared by Join and Execute.
// It builds a hash set over the child column and probes it with the
// parent column.
func join(p, c *dcs.Denotation, pi, ci, arity int) (*dcs.Denotation, error) {
	switch {
	case p.IsUniversal() && c.IsUniversal():
		return dcs.Universal(), nil
	case p.IsUniversal():
		// An unconstrained parent takes the values the child offers
		return c.Column(ci)
	case p.IsEmpty() || c.IsEmpty():
		return dcs.Empty(), nil
	case c.IsUniversal():
		return project(p, pi, arity)
	}

	keys := dcs.NewKeySet(c.Size())
	for _, t := range c.Tuples() {
		if ci > len(t) {
			return nil, fmt.Errorf("%w: child column %d out of range for tuple %s", dcs.ErrMalformedTree, ci, t)
		}
		keys.Add(dcs.NewTupleKey(t, ci-1))
	}

	b := dcs.NewBuilder(p.Size())
	for _, t := range p.Tuples() {
		if pi > len(t) {
			return nil, fmt.Errorf("%w: parent column %d out of range for tuple %s", dcs.ErrMalformedTree, pi, t)
		}
		if keys.Contains(dcs.NewTupleKey(t, pi-1)) {
			b.Add(t.Prefix(arity))
		}
	}
	return b.Denotation(), nil
}

// project truncates every tuple to arity after checking column pi exists
func project(p *dcs.Denotation, pi, arity int) (*dcs.Denotation, error) {
	b := dcs.NewBuilder(p.Size())
	for _, t := range p.Tuples() {
		if pi > len(t) {
			return nil, fmt.Errorf("%w: parent column %d out of range for tuple %s", dcs.ErrMalformedTree, pi, t)
		}
		b.Add(t.Prefix(arity))
	}
	return b.Denotation(), nil
}

// AggregateRelation reifies the child's whole denotation into a single
// value: the parent ends with exactly one tuple, (child denotation,).
type AggregateRelation struct{}

// Aggregate creates an aggregation relation
func Aggregate() *AggregateRelation {
	return &AggregateRelation{}
}

func (a *AggregateRelation) String() string { return "σ" }

// Formula renders the parent as the set of child values
func (a *AggregateRelation) Formula(parentVar, childVar string) string {
	return fmt.Sprintf("%s = σ(%s)", parentVar, childVar)
}

// Apply implements Relation
func (a *AggregateRelation) Apply(g *Grounder, parent, child *Node) (*dcs.Denotation, error) {
	start := time.Now()
	if !child.IsGrounded() {
		if _, err := g.ground(child); err != nil {
			return nil, err
		}
	}
	if child.denotation.IsUniversal() {
		return nil, fmt.Errorf("%w: cannot aggregate the universal denotation of %s", dcs.ErrMalformedTree, child)
	}

	result := dcs.NewDenotation(dcs.Tuple{child.denotation})

	if c := g.Collector(); c != nil {
		c.AddTiming(annotations.RelationAggregate, start, map[string]interface{}{
			"node":       parent.name(),
			"child":      child.name(),
			"child.size": child.denotation.Size(),
		})
	}
	return result, nil
}
