package annotations

import (
	"fmt"

	"github.com/fatih/color"
)

// DenotationRenderer pretty-prints denotation summaries inside events
type DenotationRenderer struct {
	useColor bool
}

// NewDenotationRenderer creates a new renderer
func NewDenotationRenderer(useColor bool) *DenotationRenderer {
	return &DenotationRenderer{useColor: useColor}
}

// RenderDenotation renders a node's denotation as Node(arity, n Tuples)
func (r *DenotationRenderer) RenderDenotation(node string, arity, tuples int) string {
	if r.useColor {
		return fmt.Sprintf("%s%s%s%s%s",
			color.BlueString("%s(", node),
			color.CyanString("arity=%d", arity),
			color.BlueString(", "),
			r.colorizeCount("Tuples", tuples),
			color.BlueString(")"))
	}
	return fmt.Sprintf("%s(arity=%d, %d Tuples)", node, arity, tuples)
}

// RenderJoin renders parent ⋈ child → result
func (r *DenotationRenderer) RenderJoin(relation string, parent, child, result int) string {
	if r.useColor {
		return fmt.Sprintf("%s %s %s %s %s",
			r.colorizeCount("Tuples", parent),
			color.YellowString("⋈"+relation),
			r.colorizeCount("Tuples", child),
			color.YellowString("→"),
			r.colorizeCount("Tuples", result))
	}
	return fmt.Sprintf("%d Tuples ⋈%s %d Tuples → %d Tuples", parent, relation, child, result)
}

// colorizeCount applies color to a count based on its value
func (r *DenotationRenderer) colorizeCount(label string, count int) string {
	text := fmt.Sprintf("%d %s", count, label)
	if !r.useColor {
		return text
	}

	switch {
	case count == 0:
		return color.RedString(text)
	case count < 1000:
		return color.GreenString(text)
	case count < 100000:
		return color.YellowString(text)
	default:
		return color.RedString(text)
	}
}
