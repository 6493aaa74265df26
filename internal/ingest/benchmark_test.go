package ingest

import (
	"fmt"
	"strings"
	"testing"
)

// benchmarkData returns n lines spread over 50 countries.
func benchmarkData(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = csvLine(fmt.Sprintf("Country %d", i%50), fmt.Sprintf("%d", 1950+i%70), nil)
	}
	return csvData(lines...)
}

// BenchmarkRead benchmarks parsing a source file.
func BenchmarkRead(b *testing.B) {
	data := benchmarkData(5000)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Read("bench.csv", strings.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPrepare benchmarks converting a parsed file into copy batches
// for every domain.
func BenchmarkPrepare(b *testing.B) {
	ds, err := Read("bench.csv", strings.NewReader(benchmarkData(5000)))
	if err != nil {
		b.Fatal(err)
	}
	r := NewResolver(nil)
	if err := r.Resolve(ds); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, d := range Domains {
			if _, err := (FactLoader{Domain: d}).Prepare(ds, r); err != nil {
				b.Fatal(err)
			}
		}
	}
}
