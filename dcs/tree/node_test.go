package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-dcs/dcs"
	"github.com/wbrown/janus-dcs/dcs/functions"
)

func TestNodeConstruction(t *testing.T) {
	city := New("city")
	assert.Equal(t, 1, city.Arity())
	assert.Equal(t, "city", city.Predicate().Name())
	assert.True(t, city.IsLeaf())
	assert.False(t, city.IsGrounded())
	assert.Nil(t, city.Denotation())
	assert.Nil(t, city.Stores())

	count := NewFunc(functions.Count)
	assert.Equal(t, 2, count.Arity(), "inputs plus the result column")

	null := NewNull()
	assert.Nil(t, null.Predicate())
	assert.Equal(t, 1, null.Arity())
}

func TestWithArityRejectsNonPositive(t *testing.T) {
	assert.Panics(t, func() { New("loc").WithArity(0) })
}

func TestAddChildContract(t *testing.T) {
	root := New("city")
	child := New("major")

	assert.ErrorIs(t, root.AddChild(nil, child), dcs.ErrTypeContract)
	assert.ErrorIs(t, root.AddChild((*JoinRelation)(nil), child), dcs.ErrTypeContract)
	assert.ErrorIs(t, root.AddChild((*AggregateRelation)(nil), child), dcs.ErrTypeContract)
	assert.ErrorIs(t, root.AddChild((*MarkRelation)(nil), child), dcs.ErrTypeContract)
	assert.ErrorIs(t, root.AddChild((*ExecuteRelation)(nil), child), dcs.ErrTypeContract)
	assert.Empty(t, root.Edges(), "rejected edges are not appended")
	assert.ErrorIs(t, root.AddChild(Join(1, 1), nil), dcs.ErrTypeContract)
	assert.ErrorIs(t, root.AddChild(Join(1, 1), root), dcs.ErrTypeContract)

	require.NoError(t, root.AddChild(Join(1, 1), child))
	assert.ErrorIs(t, child.AddChild(Join(1, 1), root), dcs.ErrTypeContract, "cycle through a descendant")

	assert.Len(t, root.Edges(), 1)
	assert.Equal(t, []*Node{child}, root.Children())
}

func TestAddPanicsOnContractViolation(t *testing.T) {
	assert.Panics(t, func() { New("city").Add(Join(1, 1), nil) })
}

func TestNodeString(t *testing.T) {
	assert.Equal(t, "<city;1/1:<major>:1/1:<loc;2/1:<ca>>>", majorCitiesInCalifornia().String())
	assert.Equal(t, "<null;σ:<city>>", NewNull().Add(Aggregate(), New("city")).String())
	assert.Equal(t, "<null;x:<major;C:<argmax>>>",
		NewNull().Add(Execute(), New("major").Add(Compare(), NewFunc(functions.ArgMax))).String())
}

func TestEdgesReturnsCopy(t *testing.T) {
	root := New("city").Add(Join(1, 1), New("major"))
	edges := root.Edges()
	edges[0].Child = New("loc")

	assert.Equal(t, "major", root.Children()[0].Predicate().Name())
}
