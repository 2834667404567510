package tree

import (
	"github.com/wbrown/janus-dcs/dcs"
	"github.com/wbrown/janus-dcs/dcs/world"
)

// geography is a small world: four major Californian cities, one minor
// Californian city and one major Texan city.
func geography() *world.Memory {
	return world.NewMemory().
		Define("city",
			dcs.T("los angeles"), dcs.T("san diego"), dcs.T("san francisco"),
			dcs.T("san jose"), dcs.T("fresno"), dcs.T("houston")).
		Define("major",
			dcs.T("los angeles"), dcs.T("san diego"), dcs.T("san francisco"),
			dcs.T("san jose"), dcs.T("houston")).
		Define("loc",
			dcs.T("los angeles", "ca"), dcs.T("san diego", "ca"), dcs.T("san francisco", "ca"),
			dcs.T("san jose", "ca"), dcs.T("fresno", "ca"), dcs.T("houston", "tx")).
		Define("population",
			dcs.T("los angeles", 2966850), dcs.T("san diego", 875538),
			dcs.T("san francisco", 678974), dcs.T("san jose", 629442),
			dcs.T("fresno", 218202), dcs.T("houston", 1595138),
			dcs.T("ca", 23667902), dcs.T("tx", 14229191)).
		Define("ca", dcs.T("ca")).
		Define("tx", dcs.T("tx"))
}

// majorCitiesInCalifornia builds city ⋈ major ⋈ (loc ⋈₂ ca)
func majorCitiesInCalifornia() *Node {
	return New("city").
		Add(Join(1, 1), New("major")).
		Add(Join(1, 1), New("loc").WithArity(2).
			Add(Join(2, 1), New("ca")))
}

func californianMajors() *dcs.Denotation {
	return dcs.NewDenotation(
		dcs.T("los angeles"), dcs.T("san diego"),
		dcs.T("san francisco"), dcs.T("san jose"))
}
