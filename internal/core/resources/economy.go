package resources

import "github.com/JonMunkholm/dashboard/internal/core"

func init() {
	core.Register(core.Resource{
		Key:    "population",
		Label:  "Population",
		Tag:    core.TagPopulation,
		Table:  "population",
		Fields: []core.Field{{Name: "population"}},
	})
	core.Register(core.Resource{
		Key:    "gdp",
		Label:  "GDP",
		Tag:    core.TagGDP,
		Table:  "population",
		Fields: []core.Field{{Name: "gdp"}},
	})
	core.Register(core.Resource{
		Key:   "energy",
		Label: "Energy",
		Tag:   core.TagEnergy,
		Table: "energy",
		Fields: []core.Field{
			{Name: "renewable_energy_usage"},
			{Name: "solar_energy_potential"},
			{Name: "fossil_fuel_usage"},
			{Name: "energy_consumption_per_capita"},
		},
	})
}
