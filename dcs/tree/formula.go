package tree

import (
	"fmt"
	"strings"
	"unicode"
)

// formulaRelation is implemented by relations that can render the
// constraint they impose between two bound variables.
type formulaRelation interface {
	Formula(parentVar, childVar string) string
}

// LambdaFormula renders the tree as nested quantification: a lambda
// binder for the root, existentials for every descendant, then the
// constraints each edge imposes. used is shared across the whole
// rendering so every node gets a distinct variable; pass nil for a
// top-level call. Rendering never touches denotations.
func (n *Node) LambdaFormula(used map[string]bool) []string {
	decType := "E"
	if used == nil {
		used = make(map[string]bool)
		decType = `\lambda`
	}
	decls, _ := n.formula(used, decType)
	return decls
}

// formula returns the declarations for the subtree and the node's variable
func (n *Node) formula(used map[string]bool, decType string) ([]string, string) {
	v := freshVariable(n.name(), used)
	declarations := []string{fmt.Sprintf("%s %s ", decType, v)}

	childVars := make([]string, len(n.edges))
	for i, e := range n.edges {
		decls, cv := e.Child.formula(used, "E")
		declarations = append(declarations, decls...)
		childVars[i] = cv
	}

	// Constraints go after all declarations of the subtree
	for i, e := range n.edges {
		if fr, ok := e.Relation.(formulaRelation); ok {
			declarations = append(declarations, fr.Formula(v, childVars[i]))
		}
	}
	return declarations, v
}

// freshVariable alpha-renames: first letter of the predicate plus the
// smallest unused positive suffix.
func freshVariable(name string, used map[string]bool) string {
	prefix := "x"
	if name != "null" && name != "" {
		r := []rune(name)[0]
		if unicode.IsLetter(r) {
			prefix = strings.ToLower(string(r))
		}
	}
	for offset := 1; ; offset++ {
		p := fmt.Sprintf("%s%d", prefix, offset)
		if !used[p] {
			used[p] = true
			return p
		}
	}
}

// Formula joins the rendered terms into one line
func (n *Node) Formula() string {
	terms := n.LambdaFormula(nil)
	for i := range terms {
		terms[i] = strings.TrimSpace(terms[i])
	}
	return strings.Join(terms, " ")
}
