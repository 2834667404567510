package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wbrown/janus-dcs/dcs/functions"
)

func TestLambdaFormula(t *testing.T) {
	terms := majorCitiesInCalifornia().LambdaFormula(nil)

	assert.Equal(t, []string{
		`\lambda c1 `,
		"E m1 ",
		"E l1 ",
		"E c2 ",
		"l1.2 = c2.1",
		"c1 = m1",
		"c1 = l1",
	}, terms)
}

func TestLambdaFormulaSharesVariables(t *testing.T) {
	used := map[string]bool{"c1": true}
	terms := New("city").LambdaFormula(used)

	assert.Equal(t, []string{"E c2 "}, terms)
	assert.True(t, used["c2"])
}

func TestFormula(t *testing.T) {
	tests := []struct {
		name string
		root *Node
		want string
	}{
		{
			name: "join",
			root: majorCitiesInCalifornia(),
			want: `\lambda c1 E m1 E l1 E c2 l1.2 = c2.1 c1 = m1 c1 = l1`,
		},
		{
			name: "aggregate and count",
			root: NewNull().Add(Join(1, 2),
				NewFunc(functions.Count).Add(Join(1, 1),
					NewNull().Add(Aggregate(), New("city")))),
			want: `\lambda x1 E c1 E x2 E c2 x2 = σ(c2) c1 = x2 x1.1 = c1.2`,
		},
		{
			name: "compare and execute",
			root: NewNull().Add(Execute(1), New("population").WithArity(2).
				Add(Compare(), NewFunc(functions.ArgMax))),
			want: `\lambda x1 E p1 E a1 C(p1, a1) x_1(x1, p1)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.root.Formula())
		})
	}
}

func TestFormulaDoesNotGround(t *testing.T) {
	root := majorCitiesInCalifornia()
	_ = root.Formula()

	assert.False(t, root.IsGrounded())
	assert.Nil(t, root.Denotation())
}
