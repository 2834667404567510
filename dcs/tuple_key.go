package dcs

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// TupleKey is a hashable key for a tuple or a subset of its columns.
// The hash is only a bucket selector; equality is always confirmed with
// ValuesEqual.
type TupleKey struct {
	hash   uint64
	values []Value
}

// NewTupleKey creates a key from specific tuple positions (0-based)
func NewTupleKey(tuple Tuple, indices ...int) TupleKey {
	if len(indices) == 1 {
		val := tuple[indices[0]]
		return TupleKey{hash: HashValue(val), values: []Value{val}}
	}

	values := make([]Value, len(indices))
	for i, idx := range indices {
		values[i] = tuple[idx]
	}
	return TupleKey{hash: hashValues(values), values: values}
}

// NewTupleKeyFull creates a key from an entire tuple
func NewTupleKeyFull(tuple Tuple) TupleKey {
	return TupleKey{hash: hashValues(tuple), values: tuple}
}

// Hash returns the bucket hash of the key.
func (k TupleKey) Hash() uint64 {
	return k.hash
}

// Equal checks if two keys are equal
func (k TupleKey) Equal(other TupleKey) bool {
	if k.hash != other.hash || len(k.values) != len(other.values) {
		return false
	}
	for i := range k.values {
		if !ValuesEqual(k.values[i], other.values[i]) {
			return false
		}
	}
	return true
}

// hashValues combines per-column hashes in order
func hashValues(values []Value) uint64 {
	var buf [8]byte
	d := xxhash.New()
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], HashValue(v))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// HashValue hashes a single value consistently with ValuesEqual.
func HashValue(v Value) uint64 {
	var buf [9]byte

	switch val := Normalize(v).(type) {
	case nil:
		return 0
	case string:
		return xxhash.Sum64String("s" + val)
	case int64:
		buf[0] = 'i'
		binary.LittleEndian.PutUint64(buf[1:], uint64(val))
		return xxhash.Sum64(buf[:])
	case float64:
		if val == 0 {
			val = 0 // -0 == 0
		}
		buf[0] = 'f'
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(val))
		return xxhash.Sum64(buf[:])
	case bool:
		if val {
			return 1
		}
		return 2
	case *Denotation:
		// Order-independent: sets with the same tuples hash the same
		var h uint64 = 3
		for _, t := range val.tuples {
			h += hashValues(t)
		}
		return h
	default:
		return xxhash.Sum64String(formatValue(val))
	}
}

// KeySet is a hash set of tuple keys with collision buckets.
type KeySet struct {
	m    map[uint64][]TupleKey
	size int
}

// NewKeySet creates a key set pre-sized for expected entries
func NewKeySet(expected int) *KeySet {
	return &KeySet{m: make(map[uint64][]TupleKey, expected)}
}

// Add inserts the key and reports whether it was new.
func (s *KeySet) Add(key TupleKey) bool {
	bucket := s.m[key.hash]
	for _, k := range bucket {
		if k.Equal(key) {
			return false
		}
	}
	s.m[key.hash] = append(bucket, key)
	s.size++
	return true
}

// Contains reports whether the key is present.
func (s *KeySet) Contains(key TupleKey) bool {
	for _, k := range s.m[key.hash] {
		if k.Equal(key) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct keys.
func (s *KeySet) Len() int {
	return s.size
}
