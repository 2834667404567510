package functions

import (
	"fmt"

	"github.com/wbrown/janus-dcs/dcs"
)

// GeneralizedQuantifier relates a restrictor set A to a nuclear scope B.
type GeneralizedQuantifier struct {
	name  string
	holds func(a, b *dcs.Denotation) bool
}

var (
	Some = &GeneralizedQuantifier{name: "some", holds: func(a, b *dcs.Denotation) bool {
		return a.Intersect(b).Size() > 0
	}}
	Every = &GeneralizedQuantifier{name: "every", holds: func(a, b *dcs.Denotation) bool {
		return a.IsSubsetOf(b)
	}}
	No = &GeneralizedQuantifier{name: "no", holds: func(a, b *dcs.Denotation) bool {
		return a.Intersect(b).Size() == 0
	}}
	Most = &GeneralizedQuantifier{name: "most", holds: func(a, b *dcs.Denotation) bool {
		return float64(a.Intersect(b).Size()) > 0.5*float64(a.Size())
	}}
)

func (q *GeneralizedQuantifier) Name() string { return q.name }

// Arity is 2: (restrictor, scope)
func (q *GeneralizedQuantifier) Arity() int { return 2 }

// Holds tests the quantifier relation.
func (q *GeneralizedQuantifier) Holds(restrictor, scope *dcs.Denotation) bool {
	return q.holds(restrictor, scope)
}

// Call implements q(restrictor, scope) → bool over reified sets
func (q *GeneralizedQuantifier) Call(args ...dcs.Value) (dcs.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%s expects 2 arguments, got %d", q.name, len(args))
	}
	a, err := dcs.AsSet(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", q.name, err)
	}
	b, err := dcs.AsSet(args[1])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", q.name, err)
	}
	return q.Holds(a, b), nil
}
