package core

import (
	"testing"
)

func withCleanRegistry(t *testing.T) {
	t.Helper()

	registryMu.Lock()
	saved := registry
	registry = make(map[string]Resource)
	registryMu.Unlock()

	t.Cleanup(func() {
		registryMu.Lock()
		registry = saved
		registryMu.Unlock()
	})
}

func TestRegister_FillsDefaults(t *testing.T) {
	withCleanRegistry(t)

	Register(Resource{Key: "gdp", Tag: TagGDP, Table: "population", Fields: []Field{{Name: "gdp"}}})
	Register(Resource{Key: "countries", Tag: TagCountry, Kind: KindCountry, Table: "country"})

	gdp, ok := Get("gdp")
	if !ok {
		t.Fatal("gdp not registered")
	}
	if gdp.Fields[0].Column != "gdp" {
		t.Errorf("Column = %q, want gdp", gdp.Fields[0].Column)
	}
	if gdp.DefaultOrder() != "year" {
		t.Errorf("fact default order = %q, want year", gdp.DefaultOrder())
	}
	if col, ok := gdp.OrderColumn("country"); !ok || col != "country_id" {
		t.Errorf("OrderColumn(country) = %q, %v", col, ok)
	}

	countries, _ := Get("countries")
	if countries.DefaultOrder() != "id" {
		t.Errorf("country default order = %q, want id", countries.DefaultOrder())
	}
	if _, ok := countries.OrderColumn("year"); ok {
		t.Error("countries should not sort by year")
	}
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	withCleanRegistry(t)

	Register(Resource{Key: "forests", Table: "forest", Fields: []Field{{Name: "forest_area"}}})

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate key")
		}
	}()
	Register(Resource{Key: "forests", Table: "forest", Fields: []Field{{Name: "forest_area"}}})
}

func TestRegister_PanicsOnFactWithoutFields(t *testing.T) {
	withCleanRegistry(t)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for fact resource without fields")
		}
	}()
	Register(Resource{Key: "empty", Table: "empty"})
}

func TestAllAndByTag(t *testing.T) {
	withCleanRegistry(t)

	Register(Resource{Key: "rainfall", Tag: TagHydrosphere, Table: "hydrosphere", Fields: []Field{{Name: "average_rainfall"}}})
	Register(Resource{Key: "hydrosphere", Tag: TagHydrosphere, Table: "hydrosphere", Fields: []Field{{Name: "sea_level_rise"}}})
	Register(Resource{Key: "energy", Tag: TagEnergy, Table: "energy", Fields: []Field{{Name: "fossil_fuel_usage"}}})

	all := All()
	if len(all) != 3 || Count() != 3 {
		t.Fatalf("All() returned %d resources, Count() = %d", len(all), Count())
	}
	if all[0].Key != "energy" || all[1].Key != "hydrosphere" || all[2].Key != "rainfall" {
		t.Errorf("All() not sorted by key: %s, %s, %s", all[0].Key, all[1].Key, all[2].Key)
	}

	hydro := ByTag(TagHydrosphere)
	if len(hydro) != 2 {
		t.Errorf("ByTag(hydrosphere) returned %d resources, want 2", len(hydro))
	}

	Clear()
	if Count() != 0 {
		t.Errorf("Count() after Clear = %d", Count())
	}
}

func TestResourceColumns(t *testing.T) {
	got := testTemperatures.Columns()
	want := []string{"country_id", "year", "average_temperature", "temperature_anomaly"}
	if len(got) != len(want) {
		t.Fatalf("Columns() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Columns()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := testCountries.Columns(); len(got) != 2 || got[0] != "id" || got[1] != "name" {
		t.Errorf("country Columns() = %v", got)
	}
}
