package annotations

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// OutputFormatter formats events for human-readable display.
type OutputFormatter struct {
	useColor bool
	writer   io.Writer
	renderer *DenotationRenderer
}

// NewOutputFormatter creates a formatter with color support detection.
func NewOutputFormatter(w io.Writer) *OutputFormatter {
	if w == nil {
		w = os.Stdout
	}

	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return NewOutputFormatterWithColor(w, useColor)
}

// NewOutputFormatterWithColor creates a formatter with explicit color setting
func NewOutputFormatterWithColor(w io.Writer, useColor bool) *OutputFormatter {
	return &OutputFormatter{
		useColor: useColor,
		writer:   w,
		renderer: NewDenotationRenderer(useColor),
	}
}

// Handle implements the Handler interface - prints events as they occur
func (f *OutputFormatter) Handle(event Event) {
	output := f.Format(event)
	if output != "" {
		fmt.Fprintln(f.writer, output)
	}
}

// Format converts an event to a human-readable string.
func (f *OutputFormatter) Format(event Event) string {
	latency := f.formatLatency(event.Latency)
	d := event.Data

	switch event.Name {
	case GroundBegin:
		return fmt.Sprintf("%s %s Grounding %s (%d nodes)",
			latency,
			f.colorize("===", color.FgYellow),
			str(d, "root"),
			num(d, "nodes.count"))

	case GroundComplete:
		if success, _ := d["success"].(bool); !success {
			return fmt.Sprintf("%s %s Grounding failed: %v",
				latency,
				f.colorize("✗", color.FgRed),
				d["error"])
		}
		return fmt.Sprintf("%s %s Grounding done with %s",
			latency,
			f.colorize("===", color.FgGreen),
			f.renderer.colorizeCount("Tuples", num(d, "tuples.count")))

	case NodeBase:
		return fmt.Sprintf("%s Resolved %s from %s with %s",
			latency,
			str(d, "node"),
			str(d, "source"),
			f.renderer.colorizeCount("Tuples", num(d, "tuples.count")))

	case NodeGrounded:
		return fmt.Sprintf("%s Grounded %s",
			latency,
			f.renderer.RenderDenotation(str(d, "node"), num(d, "arity"), num(d, "tuples.count")))

	case RelationJoin:
		parent, child, result := num(d, "parent.size"), num(d, "child.size"), num(d, "result.size")
		joinStr := f.renderer.RenderJoin(str(d, "relation"), parent, child, result)
		if parent > 0 && child > 0 && result > parent*child/2 && result > 1000 {
			return fmt.Sprintf("%s %s %s", latency, f.colorize("⚠️", color.FgYellow), joinStr)
		}
		return fmt.Sprintf("%s %s", latency, joinStr)

	case RelationAggregate:
		return fmt.Sprintf("%s Aggregated %s into %s",
			latency,
			f.renderer.colorizeCount("Tuples", num(d, "child.size")),
			str(d, "node"))

	case RelationMark:
		return fmt.Sprintf("%s Marked %s with %s (base %s)",
			latency,
			str(d, "node"),
			f.colorize(str(d, "kind"), color.FgCyan),
			f.renderer.colorizeCount("Tuples", num(d, "base.size")))

	case RelationExecute:
		return fmt.Sprintf("%s Executed %d stores at %s → %s",
			latency,
			num(d, "stores.executed"),
			str(d, "node"),
			f.renderer.colorizeCount("Tuples", num(d, "result.size")))

	case ErrorGrounding:
		return fmt.Sprintf("%s %s %s: %v",
			latency,
			f.colorize("✗", color.FgRed),
			str(d, "node"),
			d["error"])
	}

	return fmt.Sprintf("%s %s", latency, event.Name)
}

// formatLatency formats a duration as [XXXms] or [XXXµs] with color coding.
func (f *OutputFormatter) formatLatency(d time.Duration) string {
	if d < time.Millisecond {
		s := fmt.Sprintf("[%dµs]", d.Microseconds())
		if !f.useColor {
			return s
		}
		return color.GreenString(s)
	}

	ms := float64(d.Microseconds()) / 1000.0
	s := fmt.Sprintf("[%.1fms]", ms)
	if !f.useColor {
		return s
	}

	switch {
	case ms < 50:
		return color.GreenString(s)
	case ms < 200:
		return color.YellowString(s)
	default:
		return color.RedString(s)
	}
}

// colorize applies color if enabled.
func (f *OutputFormatter) colorize(text string, attrs ...color.Attribute) string {
	if !f.useColor {
		return text
	}
	return color.New(attrs...).Sprint(text)
}

// ConsoleHandler creates a handler that prints formatted events to stderr.
func ConsoleHandler() Handler {
	return NewOutputFormatter(os.Stderr).Handle
}

func str(data map[string]interface{}, key string) string {
	if v, ok := data[key]; ok {
		return fmt.Sprint(v)
	}
	return "?"
}

func num(data map[string]interface{}, key string) int {
	v, _ := data[key].(int)
	return v
}
