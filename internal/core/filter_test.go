package core

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFilter_Fact(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Filter
	}{
		{
			name:  "no parameters",
			query: "",
			want:  Filter{OrderBy: "year", Tags: []Tag{TagTemperature}},
		},
		{
			name:  "country zero filters",
			query: "country=0",
			want:  Filter{Country: int64Ptr(0), OrderBy: "year", Tags: []Tag{TagTemperature}},
		},
		{
			name:  "year at minimum",
			query: "year=1900",
			want:  Filter{Year: intPtr(1900), OrderBy: "year", Tags: []Tag{TagTemperature}},
		},
		{
			name:  "both filters and order",
			query: "country=4&year=2021&order_by=country",
			want:  Filter{Country: int64Ptr(4), Year: intPtr(2021), OrderBy: "country", Tags: []Tag{TagTemperature}},
		},
		{
			name:  "empty values are absent",
			query: "country=&year=&order_by=",
			want:  Filter{OrderBy: "year", Tags: []Tag{TagTemperature}},
		},
		{
			name:  "repeated and comma separated tags",
			query: "tags=pollution,energy&tags=forest",
			want:  Filter{OrderBy: "year", Tags: []Tag{TagPollution, TagEnergy, TagForest}},
		},
		{
			name:  "known tags match any case",
			query: "tags=Country,TEMPERATURE",
			want:  Filter{OrderBy: "year", Tags: []Tag{TagCountry, TagTemperature}},
		},
		{
			name:  "unknown tags are kept",
			query: "country=0&tags=climate",
			want:  Filter{Country: int64Ptr(0), OrderBy: "year", Tags: []Tag{"climate"}},
		},
		{
			name:  "largest stored values",
			query: "country=2147483647&year=2147483647",
			want:  Filter{Country: int64Ptr(2147483647), Year: intPtr(2147483647), OrderBy: "year", Tags: []Tag{TagTemperature}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}

			got, err := ParseFilter(testTemperatures, q)
			if err != nil {
				t.Fatalf("ParseFilter() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseFilter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFilter_Country(t *testing.T) {
	q := url.Values{"country": {"-5"}, "year": {"12"}, "order_by": {"name"}}

	got, err := ParseFilter(testCountries, q)
	if err != nil {
		t.Fatalf("ParseFilter() error = %v", err)
	}

	want := Filter{OrderBy: "name", Tags: []Tag{TagCountry}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("country listing should ignore country and year (-want +got):\n%s", diff)
	}

	got, err = ParseFilter(testCountries, url.Values{})
	if err != nil {
		t.Fatalf("ParseFilter() error = %v", err)
	}
	if got.OrderBy != "id" {
		t.Errorf("default order = %q, want id", got.OrderBy)
	}
}

func TestParseFilter_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		res        Resource
		query      url.Values
		wantField  string
		wantReason ValidationReason
	}{
		{"country not integer", testTemperatures, url.Values{"country": {"usa"}}, "country", ReasonNotInteger},
		{"country negative", testTemperatures, url.Values{"country": {"-1"}}, "country", ReasonBelowMinimum},
		{"year not integer", testTemperatures, url.Values{"year": {"2020.5"}}, "year", ReasonNotInteger},
		{"year before 1900", testTemperatures, url.Values{"year": {"1899"}}, "year", ReasonBelowMinimum},
		{"fact order by id", testTemperatures, url.Values{"order_by": {"id"}}, "order_by", ReasonNotAllowed},
		{"country order by year", testCountries, url.Values{"order_by": {"year"}}, "order_by", ReasonNotAllowed},
		{"country above int4", testTemperatures, url.Values{"country": {"2147483648"}}, "country", ReasonAboveMaximum},
		{"year above int4", testTemperatures, url.Values{"year": {"3000000000"}}, "year", ReasonAboveMaximum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilter(tt.res, tt.query)

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
			if ve.Reason != tt.wantReason {
				t.Errorf("Reason = %v, want %v", ve.Reason, tt.wantReason)
			}
		})
	}
}

func TestParseCountryID(t *testing.T) {
	id, err := ParseCountryID("0")
	if err != nil || id != 0 {
		t.Errorf("ParseCountryID(0) = %d, %v", id, err)
	}

	for _, raw := range []string{"abc", "-1", "1.5", "", "2147483648", "9999999999"} {
		if _, err := ParseCountryID(raw); err == nil {
			t.Errorf("ParseCountryID(%q) expected error", raw)
		}
	}
}

func TestParseFilter_TagsDoNotChangeQuery(t *testing.T) {
	base, err := ParseFilter(testTemperatures, url.Values{"country": {"0"}})
	if err != nil {
		t.Fatalf("ParseFilter() error = %v", err)
	}
	tagged, err := ParseFilter(testTemperatures, url.Values{"country": {"0"}, "tags": {"climate,Country"}})
	if err != nil {
		t.Fatalf("ParseFilter() error = %v", err)
	}

	want, err := BuildQuery(testTemperatures, base)
	if err != nil {
		t.Fatalf("BuildQuery() error = %v", err)
	}
	got, err := BuildQuery(testTemperatures, tagged)
	if err != nil {
		t.Fatalf("BuildQuery() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tags changed the query (-want +got):\n%s", diff)
	}
}
