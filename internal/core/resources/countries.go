package resources

import "github.com/JonMunkholm/dashboard/internal/core"

// CountriesKey is the key of the country dimension resource.
const CountriesKey = "countries"

func init() {
	core.Register(core.Resource{
		Key:   CountriesKey,
		Label: "Countries",
		Tag:   core.TagCountry,
		Kind:  core.KindCountry,
		Table: "country",
	})
}
