package core

// Descriptors used across the package tests, shaped the way Register
// leaves them.

var testTemperatures = Resource{
	Key:   "temperatures",
	Tag:   TagTemperature,
	Kind:  KindFact,
	Table: "temperature",
	Fields: []Field{
		{Name: "average_temperature", Column: "average_temperature"},
		{Name: "temperature_anomaly", Column: "temperature_anomaly"},
	},
	Order: factOrder,
}

var testHydrosphere = Resource{
	Key:   "hydrosphere",
	Tag:   TagHydrosphere,
	Kind:  KindFact,
	Table: "hydrosphere",
	Fields: []Field{
		{Name: "sea_level_rise", Column: "sea_level_rise"},
		{Name: "arctic_ice_extent", Column: "arctic_ice_extent"},
		{Name: "average_rainfall", Column: "average_rainfall"},
	},
	Order: factOrder,
}

var testCountries = Resource{
	Key:   "countries",
	Tag:   TagCountry,
	Kind:  KindCountry,
	Table: "country",
	Order: countryOrder,
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }
