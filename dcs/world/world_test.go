package world

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-dcs/dcs"
)

func TestMemoryLookup(t *testing.T) {
	m := NewMemory().
		Define("major", dcs.T("los angeles"), dcs.T("houston")).
		Define("ca", dcs.T("ca"))

	p, ok := m.Lookup("major")
	require.True(t, ok)
	d, err := p()
	require.NoError(t, err)
	assert.Equal(t, 2, d.Size())

	again, err := p()
	require.NoError(t, err)
	assert.Same(t, d, again, "fixed tables are built once")

	_, ok = m.Lookup("river")
	assert.False(t, ok)

	assert.Equal(t, []string{"ca", "major"}, m.Names())
}

func TestMemoryProducerAndAlias(t *testing.T) {
	calls := 0
	m := NewMemory().DefineProducer("state", func() (*dcs.Denotation, error) {
		calls++
		return dcs.NewDenotation(dcs.T("ca")), nil
	})

	require.NoError(t, m.Alias("states", "state"))
	p, ok := m.Lookup("states")
	require.True(t, ok)
	_, err := p()
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	assert.Error(t, m.Alias("rivers", "river"))
}

func TestRecording(t *testing.T) {
	r := NewRecording(NewMemory().Define("city", dcs.T("austin")))

	_, ok := r.Lookup("city")
	assert.True(t, ok)
	_, ok = r.Lookup("river")
	assert.False(t, ok)
	r.Lookup("city")

	assert.Equal(t, 2, r.Count("city"))
	assert.Equal(t, 1, r.Count("river"))
	assert.Equal(t, []string{"city", "river", "city"}, r.Order())

	r.Reset()
	assert.Empty(t, r.Order())
	assert.Equal(t, 0, r.Count("city"))
}

func lookup(t *testing.T, w World, name string) *dcs.Denotation {
	t.Helper()
	p, ok := w.Lookup(name)
	require.True(t, ok, "predicate %s", name)
	d, err := p()
	require.NoError(t, err)
	return d
}

func TestBadgerWorldRoundTrip(t *testing.T) {
	w, err := OpenBadgerInMemory()
	require.NoError(t, err)
	defer w.Close()

	population := dcs.NewDenotation(
		dcs.T("los angeles", 2966850),
		dcs.T("ca", 23667902),
		dcs.T("houston", 1595138))
	area := dcs.NewDenotation(dcs.T("ca", 158000.0), dcs.T("tx", 266000.0))
	set := dcs.NewDenotation(dcs.T(dcs.NewDenotation(dcs.T("a"), dcs.T("b"))))

	require.NoError(t, w.Put("population", population))
	require.NoError(t, w.Put("area", area))
	require.NoError(t, w.Put("reified", set))
	require.NoError(t, w.Put("nothing", dcs.Empty()))

	assert.True(t, lookup(t, w, "population").Equal(population))
	assert.True(t, lookup(t, w, "area").Equal(area))
	assert.True(t, lookup(t, w, "reified").Equal(set))
	assert.True(t, lookup(t, w, "nothing").IsEmpty())

	// Prefix scans must not leak into tables whose names share a prefix
	require.NoError(t, w.Put("populations", dcs.NewDenotation(dcs.T("x", 1))))
	assert.Equal(t, 3, lookup(t, w, "population").Size())

	_, ok := w.Lookup("river")
	assert.False(t, ok)

	assert.Equal(t, []string{"area", "nothing", "population", "populations", "reified"}, w.Names())

	assert.Error(t, w.Put("everything", dcs.Universal()))
}

func TestBadgerWorldPersists(t *testing.T) {
	dir := t.TempDir()

	w, err := OpenBadger(dir)
	require.NoError(t, err)

	src := NewMemory().
		Define("city", dcs.T("austin"), dcs.T("dallas")).
		Define("loc", dcs.T("austin", "tx"), dcs.T("dallas", "tx"))
	require.NoError(t, w.Import(src))

	// Replacing a table drops the old rows
	require.NoError(t, w.Put("city", dcs.NewDenotation(dcs.T("houston"))))
	require.NoError(t, w.Drop("loc"))
	require.NoError(t, w.Close())

	ro, err := OpenBadgerReadOnly(dir)
	require.NoError(t, err)
	defer ro.Close()

	assert.True(t, lookup(t, ro, "city").Equal(dcs.NewDenotation(dcs.T("houston"))))
	_, ok := ro.Lookup("loc")
	assert.False(t, ok)
	assert.Equal(t, []string{"city"}, ro.Names())
}

func TestBadgerImportPropagatesProducerErrors(t *testing.T) {
	w, err := OpenBadgerInMemory()
	require.NoError(t, err)
	defer w.Close()

	boom := errors.New("boom")
	src := NewMemory().DefineProducer("broken", func() (*dcs.Denotation, error) { return nil, boom })

	assert.ErrorIs(t, w.Import(src), boom)
}
