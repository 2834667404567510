// Package scenario holds hand-built DCS trees for geography questions.
// They are used by the dcs command, the examples and the tests.
package scenario

import (
	"fmt"
	"sort"

	"github.com/wbrown/janus-dcs/dcs/functions"
	"github.com/wbrown/janus-dcs/dcs/tree"
)

// Scenario pairs a question with the tree that answers it
type Scenario struct {
	Name     string
	Question string
	Build    func() *tree.Node
}

var scenarios = map[string]Scenario{
	"major-ca": {
		Name:     "major-ca",
		Question: "major cities in california",
		Build:    MajorCitiesIn("ca"),
	},
	"count-major": {
		Name:     "count-major",
		Question: "how many major cities are there",
		Build:    CountMajor,
	},
	"largest-city": {
		Name:     "largest-city",
		Question: "what is the largest city",
		Build:    LargestCity,
	},
	"every-major-ca-is-city": {
		Name:     "every-major-ca-is-city",
		Question: "is every major city in california a city",
		Build:    EveryMajorInIsCity("ca"),
	},
	"every-major-in-ca": {
		Name:     "every-major-in-ca",
		Question: "is every major city in california",
		Build:    EveryMajorIn("ca"),
	},
}

// Lookup returns the named scenario
func Lookup(name string) (Scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario %q (have %v)", name, Names())
	}
	return s, nil
}

// Names lists the scenario names, sorted
func Names() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every scenario in name order
func All() []Scenario {
	all := make([]Scenario, 0, len(scenarios))
	for _, name := range Names() {
		all = append(all, scenarios[name])
	}
	return all
}

// inState builds loc(c, s) ∧ s = state
func inState(state string) *tree.Node {
	return tree.New("loc").WithArity(2).
		Add(tree.Join(2, 1), tree.New(state))
}

// MajorCitiesIn answers "major cities in <state>":
//
//	city ─(1,1)→ major
//	     └(1,1)→ loc ─(2,1)→ state
func MajorCitiesIn(state string) func() *tree.Node {
	return func() *tree.Node {
		return tree.New("city").
			Add(tree.Join(1, 1), tree.New("major")).
			Add(tree.Join(1, 1), inState(state))
	}
}

// CountMajor answers "how many major cities":
//
//	null ─(1,2)→ count ─(1,1)→ null ─σ→ city ─(1,1)→ major
func CountMajor() *tree.Node {
	cities := tree.New("city").Add(tree.Join(1, 1), tree.New("major"))
	agg := tree.NewNull().Add(tree.Aggregate(), cities)
	count := tree.NewFunc(functions.Count).Add(tree.Join(1, 1), agg)
	return tree.NewNull().Add(tree.Join(1, 2), count)
}

// LargestCity answers "largest city" with a compare mark executed at the root:
//
//	null ─x→ population ─(1,1)→ city
//	                    └C→ argmax
func LargestCity() *tree.Node {
	measured := tree.New("population").WithArity(2).
		Add(tree.Join(1, 1), tree.New("city")).
		Add(tree.Compare(), tree.NewFunc(functions.ArgMax))
	return tree.NewNull().Add(tree.Execute(), measured)
}

// majorIn builds major ─(1,1)→ loc ─(2,1)→ state
func majorIn(state string) *tree.Node {
	return tree.New("major").Add(tree.Join(1, 1), inState(state))
}

// EveryMajorInIsCity answers "is every major city in <state> a city":
//
//	null ─x→ city ─(1,1)→ major ─(1,1)→ loc ─(2,1)→ state
//	                            └Q→ every
func EveryMajorInIsCity(state string) func() *tree.Node {
	return func() *tree.Node {
		restrictor := majorIn(state).Add(tree.Quantify(), tree.NewFunc(functions.Every))
		scope := tree.New("city").Add(tree.Join(1, 1), restrictor)
		return tree.NewNull().Add(tree.Execute(1), scope)
	}
}

// EveryMajorIn answers "is every major city in <state>"; the restrictor
// is all major cities and the scope those located in the state.
//
//	null ─x→ loc ─(1,1)→ major ─Q→ every
//	             └(2,1)→ state
func EveryMajorIn(state string) func() *tree.Node {
	return func() *tree.Node {
		restrictor := tree.New("major").Add(tree.Quantify(), tree.NewFunc(functions.Every))
		scope := tree.New("loc").WithArity(2).
			Add(tree.Join(1, 1), restrictor).
			Add(tree.Join(2, 1), tree.New(state))
		return tree.NewNull().Add(tree.Execute(), scope)
	}
}
