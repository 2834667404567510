// Package world supplies the base extensions of named predicates.
//
// A World maps a predicate name to a zero-argument producer of its
// denotation. Worlds are loaded before grounding starts and are read-only
// while a tree is being grounded: lookups must be idempotent and free of
// side effects for the duration of a pass.
package world

import (
	"fmt"
	"sort"
	"sync"

	"github.com/wbrown/janus-dcs/dcs"
)

// Producer computes the base denotation of a predicate.
type Producer func() (*dcs.Denotation, error)

// World resolves predicate names.
type World interface {
	Lookup(name string) (Producer, bool)
}

// Memory is a map-backed World.
type Memory struct {
	producers map[string]Producer
}

// NewMemory creates an empty in-memory world
func NewMemory() *Memory {
	return &Memory{producers: make(map[string]Producer)}
}

// Define registers a fixed table. The denotation is built once here, so
// every lookup returns the same value.
func (m *Memory) Define(name string, tuples ...dcs.Tuple) *Memory {
	d := dcs.NewDenotation(tuples...)
	m.producers[name] = func() (*dcs.Denotation, error) { return d, nil }
	return m
}

// DefineDenotation registers an already built denotation.
func (m *Memory) DefineDenotation(name string, d *dcs.Denotation) *Memory {
	m.producers[name] = func() (*dcs.Denotation, error) { return d, nil }
	return m
}

// DefineProducer registers a computed table.
func (m *Memory) DefineProducer(name string, p Producer) *Memory {
	m.producers[name] = p
	return m
}

// Alias makes alias resolve to the same producer as name.
func (m *Memory) Alias(alias, name string) error {
	p, ok := m.producers[name]
	if !ok {
		return fmt.Errorf("alias %s: no predicate named %s", alias, name)
	}
	m.producers[alias] = p
	return nil
}

// Lookup implements World
func (m *Memory) Lookup(name string) (Producer, bool) {
	p, ok := m.producers[name]
	return p, ok
}

// Names returns the defined predicate names, sorted
func (m *Memory) Names() []string {
	names := make([]string, 0, len(m.producers))
	for name := range m.producers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lister is implemented by worlds that can enumerate their predicates.
type Lister interface {
	Names() []string
}

// Recording wraps a World and counts lookups per predicate name, in the
// order they happened.
type Recording struct {
	inner World

	mu     sync.Mutex
	counts map[string]int
	order  []string
}

// NewRecording wraps inner
func NewRecording(inner World) *Recording {
	return &Recording{inner: inner, counts: make(map[string]int)}
}

// Lookup implements World
func (r *Recording) Lookup(name string) (Producer, bool) {
	r.mu.Lock()
	r.counts[name]++
	r.order = append(r.order, name)
	r.mu.Unlock()
	return r.inner.Lookup(name)
}

// Count returns how many times name was looked up
func (r *Recording) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[name]
}

// Order returns the lookup sequence
func (r *Recording) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Reset clears the recorded lookups
func (r *Recording) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = make(map[string]int)
	r.order = nil
}
