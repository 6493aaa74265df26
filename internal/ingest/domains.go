package ingest

// ValueKind is the storage type of a measurement.
type ValueKind int

const (
	KindFloat ValueKind = iota
	KindInt
)

// Measure maps one source column onto a fact table column.
type Measure struct {
	Source string    // Column in the source file
	Field  string    // Column in the fact table (defaults to Source)
	Kind   ValueKind // KindInt values must also be >= 0
}

func (m Measure) field() string {
	if m.Field != "" {
		return m.Field
	}
	return m.Source
}

// Domain describes one fact table fed from the source file. country_id and
// year are implicit in every domain.
type Domain struct {
	Name     string
	Table    string
	Measures []Measure
}

// Columns returns the fact table columns written for this domain, in
// copy order.
func (d Domain) Columns() []string {
	cols := make([]string, 0, len(d.Measures)+2)
	cols = append(cols, "country_id", "year")
	for _, m := range d.Measures {
		cols = append(cols, m.field())
	}
	return cols
}

// Domains lists the fact tables in load order.
var Domains = []Domain{
	{
		Name:  "Temperature",
		Table: "temperature",
		Measures: []Measure{
			{Source: "average_temperature"},
			{Source: "temperature_anomaly"},
		},
	},
	{
		Name:  "Population",
		Table: "population",
		Measures: []Measure{
			{Source: "population"},
			{Source: "gdp"},
		},
	},
	{
		Name:  "Pollution",
		Table: "pollution",
		Measures: []Measure{
			{Source: "co2_emissions"},
			{Source: "methane_emissions"},
			{Source: "air_pollution_index"},
			{Source: "ocean_acidification"},
			{Source: "per_capita_emissions"},
		},
	},
	{
		Name:  "Energy",
		Table: "energy",
		Measures: []Measure{
			{Source: "renewable_energy_usage"},
			{Source: "solar_energy_potential"},
			{Source: "fossil_fuel_usage"},
			{Source: "energy_consumption_per_capita"},
		},
	},
	{
		Name:  "Hydrosphere",
		Table: "hydrosphere",
		Measures: []Measure{
			{Source: "sea_level_rise"},
			{Source: "arctic_ice_extent"},
			{Source: "average_rainfall"},
		},
	},
	{
		Name:  "Disaster",
		Table: "disaster",
		Measures: []Measure{
			{Source: "extreme_weather_events", Kind: KindInt},
		},
	},
	{
		Name:  "Forest",
		Table: "forest",
		Measures: []Measure{
			{Source: "forest_area"},
			{Source: "deforestation_rate"},
		},
	},
}
