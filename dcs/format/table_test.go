package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wbrown/janus-dcs/dcs"
)

func TestFormatDenotation(t *testing.T) {
	d := dcs.NewDenotation(
		dcs.T("san diego", 875538),
		dcs.T("los angeles", 2966850))

	out := NewTableFormatter().FormatDenotation(d)

	assert.Contains(t, out, "c1")
	assert.Contains(t, out, "c2")
	assert.Contains(t, out, "2,966,850")
	assert.Contains(t, out, "_2 rows_")
	assert.Less(t, strings.Index(out, "los angeles"), strings.Index(out, "san diego"), "rows are sorted")
}

func TestFormatSpecialDenotations(t *testing.T) {
	tf := NewTableFormatter()

	assert.Equal(t, "_Empty denotation_", tf.FormatDenotation(nil))
	assert.Equal(t, "_Empty denotation_", tf.FormatDenotation(dcs.Empty()))
	assert.Equal(t, "_Universal_", tf.FormatDenotation(dcs.Universal()))
}

func TestFormatHeadersAndValues(t *testing.T) {
	tf := NewTableFormatter()
	tf.Headers = []string{"set", "count"}

	set := dcs.NewDenotation(dcs.T("a"), dcs.T("b"), dcs.T("c"))
	out := tf.FormatDenotation(dcs.NewDenotation(dcs.T(set, 3)))

	assert.Contains(t, out, "set")
	assert.Contains(t, out, "count")
	assert.Contains(t, out, "{3 tuples}")
	assert.Contains(t, out, "_1 row_")
}

func TestFormatValue(t *testing.T) {
	tf := &TableFormatter{MaxWidth: 5, TruncateString: "..."}

	assert.Equal(t, "nil", tf.formatValue(nil))
	assert.Equal(t, "true", tf.formatValue(true))
	assert.Equal(t, "1,234", tf.formatValue(1234))
	assert.Equal(t, "3.5", tf.formatValue(3.5))
	assert.Equal(t, "sacra...", tf.formatValue("sacramento"))
}
