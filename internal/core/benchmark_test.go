package core

import (
	"encoding/json"
	"net/url"
	"testing"
)

// ============================================================================
// Query Building Benchmarks
// ============================================================================

// BenchmarkWhereBuilder benchmarks SQL WHERE clause construction.
// Used for every filtered fact query.
func BenchmarkWhereBuilder(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wb := NewWhereBuilder()
		wb.Add(`"country_id"`, int64(12))
		wb.Add(`"year"`, 2020)
		wb.Build()
	}
}

// BenchmarkWhereBuilder_Simple benchmarks a simple single condition.
func BenchmarkWhereBuilder_Simple(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wb := NewWhereBuilder()
		wb.Add(`"year"`, 2020)
		wb.Build()
	}
}

// BenchmarkBuildQuery benchmarks the full statement for a filtered list.
func BenchmarkBuildQuery(b *testing.B) {
	f := Filter{Country: int64Ptr(3), Year: intPtr(2020), OrderBy: "country"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BuildQuery(testHydrosphere, f); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseFilter benchmarks query string validation.
func BenchmarkParseFilter(b *testing.B) {
	q := url.Values{
		"country":  {"3"},
		"year":     {"2020"},
		"order_by": {"country"},
		"tags":     {"temperature,hydrosphere"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseFilter(testTemperatures, q); err != nil {
			b.Fatal(err)
		}
	}
}

// ============================================================================
// Identifier Quoting Benchmarks
// ============================================================================

// BenchmarkQuoteIdentifier benchmarks SQL identifier quoting.
// Called for every column of every statement.
func BenchmarkQuoteIdentifier(b *testing.B) {
	identifiers := []string{
		"country_id",
		"average_temperature",
		"with\"quotes",
		"users\"; DROP TABLE users; --", // SQL injection attempt
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, id := range identifiers {
			quoteIdentifier(id)
		}
	}
}

// ============================================================================
// Projection Benchmarks
// ============================================================================

// BenchmarkProjectFact benchmarks shaping one stored row for the response.
func BenchmarkProjectFact(b *testing.B) {
	loc := NewLocator("http://localhost:8000/api/v1")
	row := []any{int32(7), int32(2020), 3.2, 4.1, 812.5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ProjectFact(testHydrosphere, row, loc); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRecordMarshal benchmarks ordered JSON encoding of a country.
func BenchmarkRecordMarshal(b *testing.B) {
	rec, err := ProjectCountry([]any{int32(7), "Kenya"}, NewLocator("http://localhost:8000/api/v1"))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := json.Marshal(rec); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkWhereBuilderParallel benchmarks parallel WHERE building.
func BenchmarkWhereBuilderParallel(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			wb := NewWhereBuilder()
			wb.Add(`"country_id"`, int64(1))
			wb.Add(`"year"`, 1900)
			wb.Build()
		}
	})
}
