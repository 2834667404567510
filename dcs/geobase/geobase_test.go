package geobase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/janus-dcs/dcs"
	"github.com/wbrown/janus-dcs/dcs/world"
)

const fixture = `
/* sample of the US geography gazetteer */
country('usa',307890000,9826675).

state('california','ca','sacramento',23.67e+6,158.0e+3,31,'los angeles','san diego','san francisco','san jose').
state('texas','tx','austin',14.2293e+6,266.0e+3,28,'houston','dallas','san antonio','el paso').
state('oregon','or','salem',2.633e+6,97.0e+3,33,'portland','eugene','salem','springfield').

city('california','ca','los angeles',2966850).
city('california','ca','san diego',875538).
city('california','ca','san francisco',678974).
city('california','ca','san jose',629442).
city('california','ca','fresno',218202).
city('texas','tx','houston',1595138).
city('texas','tx','austin',345496).
city('oregon','or','portland',366383).

border('california','ca',['oregon','nevada','arizona']).
border('oregon','or',['washington','idaho','nevada','california']).
border('texas','tx',['new mexico','oklahoma','arkansas','louisiana']).

river('colorado',2333,['colorado','utah','arizona','nevada','california']).
highlow('california','ca','mount whitney',4418,'death valley',-86).
`

func load(t *testing.T) (*world.Memory, Stats) {
	t.Helper()
	m, stats, err := LoadWithStats(strings.NewReader(fixture), Options{})
	require.NoError(t, err)
	return m, stats
}

func table(t *testing.T, w world.World, name string) *dcs.Denotation {
	t.Helper()
	p, ok := w.Lookup(name)
	require.True(t, ok, "predicate %s", name)
	d, err := p()
	require.NoError(t, err)
	return d
}

func TestLoadStats(t *testing.T) {
	_, stats := load(t)

	assert.Equal(t, 3, stats.States)
	assert.Equal(t, 8, stats.Cities)
	assert.Equal(t, 5, stats.Major)
	assert.Equal(t, 3, stats.Skipped)
	assert.Equal(t, 2, stats.Borders, "only neighbors declared as states are kept")
}

func TestLoadTables(t *testing.T) {
	m, _ := load(t)

	assert.True(t, table(t, m, "state").Equal(dcs.NewDenotation(dcs.T("ca"), dcs.T("tx"), dcs.T("or"))))
	assert.True(t, table(t, m, "major").Equal(dcs.NewDenotation(
		dcs.T("los angeles"), dcs.T("san diego"), dcs.T("san francisco"),
		dcs.T("san jose"), dcs.T("houston"))))

	population := table(t, m, "population")
	assert.True(t, population.Contains(dcs.T("ca", 23670000)))
	assert.True(t, population.Contains(dcs.T("fresno", 218202)))

	assert.True(t, table(t, m, "area").Contains(dcs.T("tx", 266000.0)))
	assert.True(t, table(t, m, "capital").Contains(dcs.T("ca", "sacramento")))
	assert.True(t, table(t, m, "loc").Contains(dcs.T("houston", "tx")))
	assert.True(t, table(t, m, "contains").Equal(table(t, m, "loc")))

	assert.True(t, table(t, m, "border").Equal(dcs.NewDenotation(
		dcs.T("ca", "or"), dcs.T("or", "ca"))))
}

func TestLoadStateConstants(t *testing.T) {
	m, _ := load(t)

	assert.True(t, table(t, m, "ca").Equal(dcs.NewDenotation(dcs.T("ca"))))
	assert.True(t, table(t, m, "california").Equal(dcs.NewDenotation(dcs.T("ca"))))
	assert.True(t, table(t, m, "texas").Equal(dcs.NewDenotation(dcs.T("tx"))))

	_, ok := m.Lookup("nevada")
	assert.False(t, ok, "nevada is only mentioned as a neighbor")
}

func TestLoadMajorThreshold(t *testing.T) {
	m, stats, err := LoadWithStats(strings.NewReader(fixture), Options{MajorThreshold: 1000000})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Major)
	assert.True(t, table(t, m, "major").Equal(dcs.NewDenotation(dcs.T("los angeles"), dcs.T("houston"))))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing period", "city('texas','tx','austin',345496)"},
		{"unterminated string", "city('texas','tx','austin,345496)."},
		{"short state", "state('texas','tx')."},
		{"population not a number", "city('texas','tx','austin','many')."},
		{"border without list", "border('texas','tx','oklahoma')."},
		{"unexpected character", "city('texas'; 'tx')."},
		{"unterminated comment", "/* city('texas','tx','austin',1)."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input), Options{})
			assert.Error(t, err)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, _, err := LoadFile("/nonexistent/geobase", Options{})
	assert.Error(t, err)
}
