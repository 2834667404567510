// Package geobase reads the Prolog-fact US geography gazetteer into a world.
//
// Only state, city and border facts contribute tables; other functors
// (river, lake, mountain, highlow, road, country) are parsed and skipped.
package geobase

import (
	"fmt"
	"io"
	"os"

	"github.com/wbrown/janus-dcs/dcs"
	"github.com/wbrown/janus-dcs/dcs/world"
)

// DefaultMajorThreshold is the population above which a city is major.
const DefaultMajorThreshold = 500000

// Options controls how facts become tables
type Options struct {
	// MajorThreshold defaults to DefaultMajorThreshold when zero
	MajorThreshold int64
}

// Stats summarizes a load
type Stats struct {
	Facts   int
	States  int
	Cities  int
	Major   int
	Borders int
	Skipped int
}

type tables struct {
	opts Options

	stateNames map[string]string // name -> abbr
	state      *dcs.Builder
	city       *dcs.Builder
	major      *dcs.Builder
	population *dcs.Builder
	area       *dcs.Builder
	capital    *dcs.Builder
	loc        *dcs.Builder
	borders    []borderFact
	stats      Stats
}

type borderFact struct {
	abbr      string
	neighbors []string
}

// Load parses a gazetteer and returns a world holding its tables
func Load(r io.Reader, opts Options) (*world.Memory, error) {
	m, _, err := LoadWithStats(r, opts)
	return m, err
}

// LoadFile loads the gazetteer at path
func LoadFile(path string, opts Options) (*world.Memory, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open geobase: %w", err)
	}
	defer f.Close()
	return LoadWithStats(f, opts)
}

// LoadWithStats is Load that also reports what was read
func LoadWithStats(r io.Reader, opts Options) (*world.Memory, Stats, error) {
	if opts.MajorThreshold == 0 {
		opts.MajorThreshold = DefaultMajorThreshold
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to read geobase: %w", err)
	}
	facts, err := Parse(string(data))
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to parse geobase: %w", err)
	}

	t := &tables{
		opts:       opts,
		stateNames: make(map[string]string),
		state:      dcs.NewBuilder(64),
		city:       dcs.NewBuilder(512),
		major:      dcs.NewBuilder(32),
		population: dcs.NewBuilder(512),
		area:       dcs.NewBuilder(64),
		capital:    dcs.NewBuilder(64),
		loc:        dcs.NewBuilder(512),
	}
	for _, fact := range facts {
		t.stats.Facts++
		if err := t.add(fact); err != nil {
			return nil, Stats{}, fmt.Errorf("line %d: %w", fact.Line, err)
		}
	}

	return t.build(), t.stats, nil
}

func (t *tables) add(f Fact) error {
	switch f.Functor {
	case "state":
		return t.addState(f)
	case "city":
		return t.addCity(f)
	case "border":
		return t.addBorder(f)
	default:
		t.stats.Skipped++
		return nil
	}
}

// state(name, abbr, capital, population, area, rank, city1, city2, city3, city4)
func (t *tables) addState(f Fact) error {
	if len(f.Args) < 5 {
		return fmt.Errorf("state: expected at least 5 arguments, got %d", len(f.Args))
	}
	name, err := f.Args[0].Text()
	if err != nil {
		return fmt.Errorf("state name: %w", err)
	}
	abbr, err := f.Args[1].Text()
	if err != nil {
		return fmt.Errorf("state abbreviation: %w", err)
	}
	capital, err := f.Args[2].Text()
	if err != nil {
		return fmt.Errorf("state capital: %w", err)
	}
	population, err := f.Args[3].Int()
	if err != nil {
		return fmt.Errorf("state population: %w", err)
	}
	area, err := f.Args[4].Float()
	if err != nil {
		return fmt.Errorf("state area: %w", err)
	}

	t.stateNames[name] = abbr
	t.state.Add(dcs.T(abbr))
	t.population.Add(dcs.T(abbr, population))
	t.area.Add(dcs.T(abbr, area))
	t.capital.Add(dcs.T(abbr, capital))
	t.stats.States++
	return nil
}

// city(state, abbr, name, population)
func (t *tables) addCity(f Fact) error {
	if len(f.Args) != 4 {
		return fmt.Errorf("city: expected 4 arguments, got %d", len(f.Args))
	}
	abbr, err := f.Args[1].Text()
	if err != nil {
		return fmt.Errorf("city state: %w", err)
	}
	name, err := f.Args[2].Text()
	if err != nil {
		return fmt.Errorf("city name: %w", err)
	}
	population, err := f.Args[3].Int()
	if err != nil {
		return fmt.Errorf("city population: %w", err)
	}

	t.city.Add(dcs.T(name))
	t.population.Add(dcs.T(name, population))
	t.loc.Add(dcs.T(name, abbr))
	t.stats.Cities++
	if population > t.opts.MajorThreshold {
		t.major.Add(dcs.T(name))
		t.stats.Major++
	}
	return nil
}

// border(name, abbr, [neighbor names])
func (t *tables) addBorder(f Fact) error {
	if len(f.Args) != 3 || f.Args[2].Type != TermList {
		return fmt.Errorf("border: expected (name, abbr, [states]), got %s", f)
	}
	abbr, err := f.Args[1].Text()
	if err != nil {
		return fmt.Errorf("border state: %w", err)
	}
	b := borderFact{abbr: abbr}
	for _, n := range f.Args[2].Terms {
		name, err := n.Text()
		if err != nil {
			return fmt.Errorf("border neighbor: %w", err)
		}
		b.neighbors = append(b.neighbors, name)
	}
	t.borders = append(t.borders, b)
	return nil
}

func (t *tables) build() *world.Memory {
	// Neighbors are listed by name; states may be declared after their borders.
	border := dcs.NewBuilder(len(t.borders) * 4)
	for _, b := range t.borders {
		for _, name := range b.neighbors {
			if abbr, ok := t.stateNames[name]; ok {
				border.Add(dcs.T(b.abbr, abbr))
				t.stats.Borders++
			}
		}
	}

	loc := t.loc.Denotation()
	m := world.NewMemory().
		DefineDenotation("state", t.state.Denotation()).
		DefineDenotation("city", t.city.Denotation()).
		DefineDenotation("major", t.major.Denotation()).
		DefineDenotation("population", t.population.Denotation()).
		DefineDenotation("area", t.area.Denotation()).
		DefineDenotation("capital", t.capital.Denotation()).
		DefineDenotation("loc", loc).
		DefineDenotation("contains", loc).
		DefineDenotation("border", border.Denotation())

	for name, abbr := range t.stateNames {
		constant := dcs.NewDenotation(dcs.T(abbr))
		m.DefineDenotation(abbr, constant)
		m.DefineDenotation(name, constant)
	}
	return m
}
