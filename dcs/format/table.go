// Package format renders denotations as markdown tables.
package format

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/wbrown/janus-dcs/dcs"
)

// TableFormatter formats denotations as markdown tables
type TableFormatter struct {
	// MaxWidth is the maximum width for a column
	MaxWidth int
	// TruncateString is the string to append when truncating
	TruncateString string
	// Headers overrides the default c1..cn column names
	Headers []string
}

// NewTableFormatter creates a new table formatter with default settings
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		MaxWidth:       50,
		TruncateString: "...",
	}
}

// FormatDenotation formats a denotation as a markdown table, rows sorted
func (tf *TableFormatter) FormatDenotation(d *dcs.Denotation) string {
	switch {
	case d == nil:
		return "_Empty denotation_"
	case d.IsUniversal():
		return "_Universal_"
	case d.IsEmpty():
		return "_Empty denotation_"
	}

	arity, err := d.Arity()
	if err != nil {
		return fmt.Sprintf("_%v_", err)
	}
	return tf.formatTable(tf.headers(arity), d.Sorted())
}

func (tf *TableFormatter) headers(arity int) []string {
	if len(tf.Headers) == arity {
		return tf.Headers
	}
	headers := make([]string, arity)
	for i := range headers {
		headers[i] = fmt.Sprintf("c%d", i+1)
	}
	return headers
}

// formatTable formats columns and tuples as a markdown table
func (tf *TableFormatter) formatTable(columns []string, tuples []dcs.Tuple) string {
	tableString := &strings.Builder{}

	alignment := make([]tw.Align, len(columns))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(tableString,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(columns)

	for _, tuple := range tuples {
		row := make([]string, len(tuple))
		for j, val := range tuple {
			row[j] = tf.formatValue(val)
		}
		table.Append(row)
	}

	table.Render()

	if len(tuples) == 1 {
		tableString.WriteString("\n_1 row_\n")
	} else {
		tableString.WriteString(fmt.Sprintf("\n_%s rows_\n", humanize.Comma(int64(len(tuples)))))
	}

	return tableString.String()
}

// formatValue converts a value to a string representation
func (tf *TableFormatter) formatValue(val dcs.Value) string {
	var s string
	switch v := dcs.Normalize(val).(type) {
	case nil:
		return "nil"
	case string:
		s = v
	case int64:
		s = humanize.Comma(v)
	case float64:
		s = humanize.CommafWithDigits(v, 2)
	case bool:
		s = fmt.Sprintf("%t", v)
	case *dcs.Denotation:
		s = fmt.Sprintf("{%d tuples}", v.Size())
	default:
		s = fmt.Sprintf("%v", v)
	}
	if tf.MaxWidth > 0 && len(s) > tf.MaxWidth {
		s = s[:tf.MaxWidth] + tf.TruncateString
	}
	return s
}

// DenotationString renders d with the default formatter
func DenotationString(d *dcs.Denotation) string {
	return NewTableFormatter().FormatDenotation(d)
}
