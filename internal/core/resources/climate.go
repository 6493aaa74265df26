package resources

import "github.com/JonMunkholm/dashboard/internal/core"

func init() {
	registerTemperature()
	registerHydrosphere()
	registerDisasters()
	registerForests()
}

func registerTemperature() {
	core.Register(core.Resource{
		Key:   "temperatures",
		Label: "Temperatures",
		Tag:   core.TagTemperature,
		Table: "temperature",
		Fields: []core.Field{
			{Name: "average_temperature"},
			{Name: "temperature_anomaly"},
		},
	})
	core.Register(core.Resource{
		Key:    "temperatures/average",
		Label:  "Average temperature",
		Tag:    core.TagTemperature,
		Table:  "temperature",
		Fields: []core.Field{{Name: "average_temperature"}},
	})
	core.Register(core.Resource{
		Key:    "temperatures/anomaly",
		Label:  "Temperature anomaly",
		Tag:    core.TagTemperature,
		Table:  "temperature",
		Fields: []core.Field{{Name: "temperature_anomaly"}},
	})
}

func registerHydrosphere() {
	core.Register(core.Resource{
		Key:   "hydrosphere",
		Label: "Hydrosphere",
		Tag:   core.TagHydrosphere,
		Table: "hydrosphere",
		Fields: []core.Field{
			{Name: "sea_level_rise"},
			{Name: "arctic_ice_extent"},
			{Name: "average_rainfall"},
		},
	})
	core.Register(core.Resource{
		Key:    "rainfall",
		Label:  "Average rainfall",
		Tag:    core.TagHydrosphere,
		Table:  "hydrosphere",
		Fields: []core.Field{{Name: "average_rainfall"}},
	})
}

func registerDisasters() {
	core.Register(core.Resource{
		Key:    "disasters",
		Label:  "Extreme weather events",
		Tag:    core.TagDisaster,
		Table:  "disaster",
		Fields: []core.Field{{Name: "extreme_weather_events"}},
	})
}

func registerForests() {
	core.Register(core.Resource{
		Key:   "forests",
		Label: "Forests",
		Tag:   core.TagForest,
		Table: "forest",
		Fields: []core.Field{
			{Name: "forest_area"},
			{Name: "deforestation_rate"},
		},
	})
}
