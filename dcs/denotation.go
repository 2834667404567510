package dcs

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
)

// Denotation is the semantic value of a tree node: an unordered,
// deduplicated collection of tuples.
//
// Denotations are IMMUTABLE once built. Every relation produces a NEW
// Denotation; nothing mutates the one it was given.
type Denotation struct {
	tuples    []Tuple
	keys      *KeySet
	universal bool
}

// NewDenotation builds a denotation from tuples, dropping duplicates.
func NewDenotation(tuples ...Tuple) *Denotation {
	b := NewBuilder(len(tuples))
	for _, t := range tuples {
		b.Add(t)
	}
	return b.Denotation()
}

// Empty returns a denotation with no tuples.
func Empty() *Denotation {
	return NewDenotation()
}

// Universal returns the unconstrained denotation of a node that has no
// predicate of its own. Joining it with a child keeps whatever the child
// constrains.
func Universal() *Denotation {
	return &Denotation{keys: NewKeySet(0), universal: true}
}

// Truth returns the single-column truth-value denotation {(b,)}.
func Truth(b bool) *Denotation {
	return NewDenotation(T(b))
}

// Builder accumulates tuples into a Denotation, deduplicating as it goes.
type Builder struct {
	d *Denotation
}

// NewBuilder creates a builder pre-sized for n tuples
func NewBuilder(n int) *Builder {
	return &Builder{d: &Denotation{
		tuples: make([]Tuple, 0, n),
		keys:   NewKeySet(n),
	}}
}

// Add appends t unless an equal tuple is already present.
func (b *Builder) Add(t Tuple) bool {
	if !b.d.keys.Add(NewTupleKeyFull(t)) {
		return false
	}
	b.d.tuples = append(b.d.tuples, t)
	return true
}

// Denotation returns the built denotation. The builder must not be used afterwards.
func (b *Builder) Denotation() *Denotation {
	d := b.d
	b.d = nil
	return d
}

// Size returns the number of tuples
func (d *Denotation) Size() int {
	if d == nil {
		return 0
	}
	return len(d.tuples)
}

// IsEmpty returns true if the denotation has no tuples and is not universal
func (d *Denotation) IsEmpty() bool {
	return d == nil || (!d.universal && len(d.tuples) == 0)
}

// IsUniversal reports whether d is the unconstrained denotation.
func (d *Denotation) IsUniversal() bool {
	return d != nil && d.universal
}

// Tuples returns a copy of the tuple slice in insertion order.
func (d *Denotation) Tuples() []Tuple {
	if d == nil {
		return nil
	}
	out := make([]Tuple, len(d.tuples))
	copy(out, d.tuples)
	return out
}

// Get returns the i-th tuple in insertion order
func (d *Denotation) Get(i int) Tuple {
	return d.tuples[i]
}

// Contains reports whether an equal tuple is present.
func (d *Denotation) Contains(t Tuple) bool {
	if d == nil {
		return false
	}
	if d.universal {
		return true
	}
	return d.keys.Contains(NewTupleKeyFull(t))
}

// Equal reports set equality.
func (d *Denotation) Equal(other *Denotation) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil {
		return d.IsEmpty() && other.IsEmpty()
	}
	if d.universal != other.universal || len(d.tuples) != len(other.tuples) {
		return false
	}
	for _, t := range d.tuples {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}

// Arity returns the common tuple width. An empty or universal denotation
// has arity 0. Mixed widths are a malformed denotation.
func (d *Denotation) Arity() (int, error) {
	if d.IsEmpty() || d.universal {
		return 0, nil
	}
	n := len(d.tuples[0])
	for _, t := range d.tuples[1:] {
		if len(t) != n {
			return 0, fmt.Errorf("%w: mixed tuple widths %d and %d", ErrMalformedTree, n, len(t))
		}
	}
	return n, nil
}

// Sorted returns the tuples sorted column by column, for golden output.
func (d *Denotation) Sorted() []Tuple {
	out := d.Tuples()
	sort.SliceStable(out, func(i, j int) bool {
		return CompareTuples(out[i], out[j]) < 0
	})
	return out
}

// Column projects the 1-based column i into a one-column denotation.
func (d *Denotation) Column(i int) (*Denotation, error) {
	if d.IsUniversal() {
		return Universal(), nil
	}
	b := NewBuilder(d.Size())
	for _, t := range d.tuples {
		if i < 1 || i > len(t) {
			return nil, fmt.Errorf("%w: column %d out of range for tuple %s", ErrMalformedTree, i, t)
		}
		b.Add(Tuple{t[i-1]})
	}
	return b.Denotation(), nil
}

// Values returns column 1 of every tuple.
func (d *Denotation) Values() []Value {
	out := make([]Value, 0, d.Size())
	for _, t := range d.tuples {
		if len(t) > 0 {
			out = append(out, t[0])
		}
	}
	return out
}

// String returns a compact representation for annotations and logging
func (d *Denotation) String() string {
	if d == nil {
		return color.RedString("Denotation(ungrounded)")
	}
	if d.universal {
		return fmt.Sprintf("%s%s%s",
			color.BlueString("Denotation("),
			color.CyanString("universal"),
			color.BlueString(")"))
	}

	count := len(d.tuples)
	var countStr string
	switch {
	case count == 0:
		countStr = color.RedString("%d", count)
	case count < 1000:
		countStr = color.GreenString("%d", count)
	default:
		countStr = color.YellowString("%d", count)
	}

	arity, err := d.Arity()
	arityStr := color.CyanString("%d", arity)
	if err != nil {
		arityStr = color.RedString("mixed")
	}

	return fmt.Sprintf("%s%s%s%s%s",
		color.BlueString("Denotation(arity="),
		arityStr,
		color.BlueString(", "),
		countStr+" Tuples",
		color.BlueString(")"))
}

// Intersect returns the tuples present in both denotations.
func (d *Denotation) Intersect(other *Denotation) *Denotation {
	if d.IsUniversal() {
		return other
	}
	if other.IsUniversal() {
		return d
	}
	b := NewBuilder(d.Size())
	for _, t := range d.tuples {
		if other.Contains(t) {
			b.Add(t)
		}
	}
	return b.Denotation()
}

// IsSubsetOf reports whether every tuple of d is in other.
func (d *Denotation) IsSubsetOf(other *Denotation) bool {
	if other.IsUniversal() {
		return true
	}
	if d.IsUniversal() {
		return false
	}
	for _, t := range d.tuples {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}
