package functions

import (
	"fmt"

	"github.com/wbrown/janus-dcs/dcs"
)

// Superlative selects the rows of a set that maximize (or minimize) a
// measure column. Ties are all kept.
type Superlative struct {
	name string
	max  bool
	// Column is the 1-based measure column used by Select; 0 means the last column.
	Column int
}

var (
	ArgMax = &Superlative{name: "argmax", max: true}
	ArgMin = &Superlative{name: "argmin", max: false}
)

func (s *Superlative) Name() string { return s.name }

// Arity is 2: (measure column, set)
func (s *Superlative) Arity() int { return 2 }

// OnColumn returns a copy of the superlative measuring the given column.
func (s *Superlative) OnColumn(col int) *Superlative {
	c := *s
	c.Column = col
	return &c
}

// Call implements argmax(column, set) → set of best rows
func (s *Superlative) Call(args ...dcs.Value) (dcs.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%s expects 2 arguments, got %d", s.name, len(args))
	}
	col, ok := dcs.Normalize(args[0]).(int64)
	if !ok {
		return nil, fmt.Errorf("%s: measure column must be an integer, got %T", s.name, args[0])
	}
	set, err := dcs.AsSet(args[1])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return s.selectOn(set, int(col))
}

// Select picks the best rows of base on the configured measure column.
func (s *Superlative) Select(base *dcs.Denotation) (*dcs.Denotation, error) {
	col := s.Column
	if col == 0 {
		arity, err := base.Arity()
		if err != nil {
			return nil, err
		}
		col = arity
	}
	return s.selectOn(base, col)
}

func (s *Superlative) selectOn(set *dcs.Denotation, col int) (*dcs.Denotation, error) {
	if set.IsUniversal() {
		return nil, fmt.Errorf("%s over the universal denotation", s.name)
	}

	var best []dcs.Tuple
	for _, t := range set.Tuples() {
		if col < 1 || col > len(t) {
			return nil, fmt.Errorf("%w: %s column %d out of range for tuple %s", dcs.ErrMalformedTree, s.name, col, t)
		}
		if len(best) == 0 {
			best = append(best, t)
			continue
		}
		c := dcs.CompareValues(t[col-1], best[0][col-1])
		if !s.max {
			c = -c
		}
		switch {
		case c > 0:
			best = append(best[:0], t)
		case c == 0:
			best = append(best, t)
		}
	}
	return dcs.NewDenotation(best...), nil
}

// Comparative compares the extreme measures of two sets.
type Comparative struct {
	name string
	more bool
}

var (
	More = &Comparative{name: "more", more: true}
	Less = &Comparative{name: "less", more: false}
)

func (c *Comparative) Name() string { return c.name }

// Arity is 3: (measure column, a, b)
func (c *Comparative) Arity() int { return 3 }

// Call implements more(col, a, b) = max(a.col) > max(b.col) and
// less(col, a, b) = min(a.col) < min(b.col).
func (c *Comparative) Call(args ...dcs.Value) (dcs.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("%s expects 3 arguments, got %d", c.name, len(args))
	}
	col, ok := dcs.Normalize(args[0]).(int64)
	if !ok {
		return nil, fmt.Errorf("%s: measure column must be an integer, got %T", c.name, args[0])
	}
	a, err := dcs.AsSet(args[1])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	b, err := dcs.AsSet(args[2])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.name, err)
	}
	if a.IsEmpty() || b.IsEmpty() {
		return false, nil
	}

	sup := ArgMax
	if !c.more {
		sup = ArgMin
	}
	ea, err := sup.selectOn(a, int(col))
	if err != nil {
		return nil, err
	}
	eb, err := sup.selectOn(b, int(col))
	if err != nil {
		return nil, err
	}
	cmp := dcs.CompareValues(ea.Get(0)[col-1], eb.Get(0)[col-1])
	if c.more {
		return cmp > 0, nil
	}
	return cmp < 0, nil
}
