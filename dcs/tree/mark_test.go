package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-dcs/dcs"
	"github.com/wbrown/janus-dcs/dcs/functions"
)

func TestMarkLeavesDenotationUnchanged(t *testing.T) {
	major := New("major").Add(Compare(), NewFunc(functions.ArgMax))

	d, err := major.Ground(geography())
	require.NoError(t, err)
	assert.Equal(t, 5, d.Size())

	stores := major.Stores()
	require.Len(t, stores, 1)
	s := stores[0]
	assert.Equal(t, MarkCompare, s.Kind)
	assert.Same(t, major, s.Owner())
	assert.False(t, s.Executed())
	assert.Equal(t, 5, s.Base.Size())
}

func TestCompareExecuteLargestCity(t *testing.T) {
	measured := New("population").WithArity(2).
		Add(Join(1, 1), New("city")).
		Add(Compare(), NewFunc(functions.ArgMax))
	root := NewNull().Add(Execute(), measured)

	d, err := root.Ground(geography())
	require.NoError(t, err)
	assert.True(t, d.Equal(dcs.NewDenotation(dcs.T("los angeles"))), "got %v", d.Sorted())
	assert.True(t, measured.Stores()[0].Executed())
}

func TestCompareExecuteSmallestCityInCalifornia(t *testing.T) {
	measured := New("population").WithArity(2).
		Add(Join(1, 1), New("loc").WithArity(2).Add(Join(2, 1), New("ca"))).
		Add(Compare(), NewFunc(functions.ArgMin))
	root := NewNull().Add(Execute(1), measured)

	d, err := root.Ground(geography())
	require.NoError(t, err)
	assert.True(t, d.Equal(dcs.NewDenotation(dcs.T("fresno"))), "got %v", d.Sorted())
}

func TestCompareNeedsSelector(t *testing.T) {
	root := NewNull().Add(Execute(), New("major").Add(Compare(), New("city")))

	_, err := root.Ground(geography())
	assert.ErrorIs(t, err, dcs.ErrMalformedTree)
}

func TestQuantifyExecute(t *testing.T) {
	majorInCA := func(q functions.Function) *Node {
		return New("major").
			Add(Join(1, 1), New("loc").WithArity(2).Add(Join(2, 1), New("ca"))).
			Add(Quantify(), NewFunc(q))
	}

	tests := []struct {
		name  string
		build func() *Node
		want  bool
	}{
		{
			name: "every major californian city is a city",
			build: func() *Node {
				return NewNull().Add(Execute(1), New("city").Add(Join(1, 1), majorInCA(functions.Every)))
			},
			want: true,
		},
		{
			name: "every major city is in california",
			build: func() *Node {
				scope := New("loc").WithArity(2).
					Add(Join(1, 1), New("major").Add(Quantify(), NewFunc(functions.Every))).
					Add(Join(2, 1), New("ca"))
				return NewNull().Add(Execute(), scope)
			},
			want: false,
		},
		{
			name: "most major cities are in california",
			build: func() *Node {
				scope := New("loc").WithArity(2).
					Add(Join(1, 1), New("major").Add(Quantify(), NewFunc(functions.Most))).
					Add(Join(2, 1), New("ca"))
				return NewNull().Add(Execute(), scope)
			},
			want: true,
		},
		{
			name: "no major city is in texas",
			build: func() *Node {
				scope := New("loc").WithArity(2).
					Add(Join(1, 1), New("major").Add(Quantify(), NewFunc(functions.No))).
					Add(Join(2, 1), New("tx"))
				return NewNull().Add(Execute(), scope)
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.build().Ground(geography())
			require.NoError(t, err)
			assert.True(t, d.Equal(dcs.Truth(tt.want)), "got %v", d.Sorted())
		})
	}
}

func TestQuantifyFiltersConstrainedParent(t *testing.T) {
	restrictor := New("major").Add(Quantify(), NewFunc(functions.Some))
	root := New("city").Add(Execute(), New("loc").WithArity(2).
		Add(Join(1, 1), restrictor).
		Add(Join(2, 1), New("tx")))

	d, err := root.Ground(geography())
	require.NoError(t, err)
	assert.Equal(t, 6, d.Size(), "some holds, so the parent is kept")
}

func TestExtractExecute(t *testing.T) {
	// Extraction substitutes the marked child's denotation at the execution point
	root := New("city").Add(Execute(), New("state").Add(Extract(), New("major")))
	w := geography().Define("state", dcs.T("ca"), dcs.T("tx"))

	d, err := root.Ground(w)
	require.NoError(t, err)
	assert.Equal(t, 5, d.Size())
	assert.False(t, d.Contains(dcs.T("fresno")))
}

func TestExecuteIndicesFollowPreorder(t *testing.T) {
	// Two pending stores: argmax on population (preorder first), then the
	// extract on city. Executing only store 2 leaves the compare pending.
	measured := New("population").WithArity(2).
		Add(Compare(), NewFunc(functions.ArgMax)).
		Add(Join(1, 1), New("city").Add(Extract(), New("major")))
	root := New("city").Add(Execute(2), measured)

	d, err := root.Ground(geography())
	require.NoError(t, err)
	assert.Equal(t, 5, d.Size())

	assert.False(t, measured.Stores()[0].Executed())
	city := measured.Children()[1]
	assert.True(t, city.Stores()[0].Executed())
}

func TestExecutedStoresAreConsumed(t *testing.T) {
	measured := New("population").WithArity(2).
		Add(Join(1, 1), New("city")).
		Add(Compare(), NewFunc(functions.ArgMax))
	root := NewNull().
		Add(Execute(), measured).
		Add(Execute(), measured)

	_, err := root.Ground(geography())
	assert.ErrorIs(t, err, dcs.ErrMalformedTree)
}

func TestExecuteRejectsDuplicateIndex(t *testing.T) {
	measured := New("population").WithArity(2).
		Add(Join(1, 1), New("city")).
		Add(Compare(), NewFunc(functions.ArgMax))

	_, err := NewNull().Add(Execute(1, 1), measured).Ground(geography())
	assert.ErrorIs(t, err, dcs.ErrMalformedTree)
}

func TestSharedMarkedNodeHasOneStore(t *testing.T) {
	measured := func() *Node {
		return New("population").WithArity(2).
			Add(Join(1, 1), New("city")).
			Add(Compare(), NewFunc(functions.ArgMax))
	}
	shared := func() (*Node, *Node) {
		m := measured()
		return New("city").Add(Join(1, 1), m).Add(Join(1, 1), m), m
	}

	wrapper, m := shared()
	d, err := NewNull().Add(Execute(1), wrapper).Ground(geography())
	require.NoError(t, err)
	assert.True(t, d.Equal(dcs.NewDenotation(dcs.T("los angeles"))), "got %v", d.Sorted())
	assert.True(t, m.Stores()[0].Executed())

	wrapper, _ = shared()
	_, err = NewNull().Add(Execute(1, 2), wrapper).Ground(geography())
	assert.ErrorIs(t, err, dcs.ErrMalformedTree, "one store, reachable twice")
}

func TestSameKindMarksKeepSeparateStores(t *testing.T) {
	major := New("major").
		Add(Extract(), New("city")).
		Add(Extract(), New("ca"))

	_, err := major.Ground(geography())
	require.NoError(t, err)

	stores := major.Stores()
	require.Len(t, stores, 2)
	assert.Equal(t, MarkExtract, stores[0].Kind)
	assert.Equal(t, MarkExtract, stores[1].Kind)
	assert.Equal(t, 6, stores[0].Child.Size())
	assert.Equal(t, 1, stores[1].Child.Size())
}

func TestStoresResetBetweenPasses(t *testing.T) {
	measured := New("population").WithArity(2).
		Add(Join(1, 1), New("city")).
		Add(Compare(), NewFunc(functions.ArgMax))
	root := NewNull().Add(Execute(), measured)
	g := NewGrounder(geography(), GroundOptions{})

	first, err := g.Ground(root)
	require.NoError(t, err)
	second, err := g.Ground(root)
	require.NoError(t, err, "a new pass starts with fresh stores")
	assert.True(t, first.Equal(second))
}

func TestMarkRelationStrings(t *testing.T) {
	assert.Equal(t, "E", Extract().String())
	assert.Equal(t, "C", Compare().String())
	assert.Equal(t, "Q", Quantify().String())
	assert.Equal(t, "x", Execute().String())
	assert.Equal(t, "x_12", Execute(1, 2).String())
}
