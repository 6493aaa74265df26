package resources

import "github.com/JonMunkholm/dashboard/internal/core"

func init() {
	core.Register(core.Resource{
		Key:   "pollution",
		Label: "Pollution",
		Tag:   core.TagPollution,
		Table: "pollution",
		Fields: []core.Field{
			{Name: "co2_emissions"},
			{Name: "methane_emissions"},
			{Name: "air_pollution_index"},
			{Name: "ocean_acidification"},
			{Name: "per_capita_emissions"},
		},
	})

	for _, sub := range []struct {
		key, label, field string
	}{
		{"pollution/co2", "CO2 emissions", "co2_emissions"},
		{"pollution/methane", "Methane emissions", "methane_emissions"},
		{"pollution/air-pollution-index", "Air pollution index", "air_pollution_index"},
		{"pollution/ocean-acidification", "Ocean acidification", "ocean_acidification"},
		{"pollution/per-capita", "Per capita emissions", "per_capita_emissions"},
	} {
		core.Register(core.Resource{
			Key:    sub.key,
			Label:  sub.label,
			Tag:    core.TagPollution,
			Table:  "pollution",
			Fields: []core.Field{{Name: sub.field}},
		})
	}
}
