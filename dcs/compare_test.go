package dcs

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareValues(t *testing.T) {
	tests := []struct {
		name  string
		left  Value
		right Value
		want  int
	}{
		{"ints", 1, 2, -1},
		{"int and int64", 7, int64(7), 0},
		{"int and float", 2, 1.5, 1},
		{"equal int and float", 4, 4.0, 0},
		{"strings", "austin", "boston", -1},
		{"bools", false, true, -1},
		{"number before string", 10, "a", -1},
		{"string before bool", "z", false, -1},
		{"nil first", nil, 0, -1},
		{"smaller set first", NewDenotation(T("a")), NewDenotation(T("a"), T("b")), -1},
		{"equal sets", NewDenotation(T("a"), T("b")), NewDenotation(T("b"), T("a")), 0},
		{"sets by content", NewDenotation(T("a")), NewDenotation(T("b")), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareValues(tt.left, tt.right))
			assert.Equal(t, -tt.want, CompareValues(tt.right, tt.left))
		})
	}
}

func TestCompareTuples(t *testing.T) {
	tuples := []Tuple{T("b", 1), T("a", 2), T("a"), T("a", 1)}
	sort.Slice(tuples, func(i, j int) bool { return CompareTuples(tuples[i], tuples[j]) < 0 })

	assert.Equal(t, []Tuple{T("a"), T("a", 1), T("a", 2), T("b", 1)}, tuples)
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, ValuesEqual(3, int64(3)))
	assert.True(t, ValuesEqual(float32(1.5), 1.5))
	assert.False(t, ValuesEqual(4, 4.0), "join keys must agree on kind")
	assert.False(t, ValuesEqual("4", 4))
	assert.True(t, ValuesEqual(NewDenotation(T(1), T(2)), NewDenotation(T(2), T(1))))
	assert.False(t, ValuesEqual(NewDenotation(T(1)), 1))
	assert.True(t, ValuesEqual(nil, nil))
}
