package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Columns is the fixed column order of a source file. Files carry no
// header row.
var Columns = []string{
	"country", "year", "temperature_anomaly", "co2_emissions", "population",
	"forest_area", "gdp", "renewable_energy_usage", "methane_emissions",
	"sea_level_rise", "arctic_ice_extent", "urbanization",
	"deforestation_rate", "extreme_weather_events", "average_rainfall",
	"solar_energy_potential", "waste_management", "per_capita_emissions",
	"industrial_activity", "air_pollution_index", "biodiversity_index",
	"ocean_acidification", "fossil_fuel_usage",
	"energy_consumption_per_capita", "policy_score", "average_temperature",
}

// ColumnCount is the number of fields on every line.
const ColumnCount = 26

var columnIndex = func() map[string]int {
	idx := make(map[string]int, len(Columns))
	for i, c := range Columns {
		idx[c] = i
	}
	return idx
}()

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one parsed line.
type Row struct {
	Line   int
	Fields []string
}

// Dataset is the content of one source file.
type Dataset struct {
	Name string
	Rows []Row
}

// Value returns the named column of row. Short rows fail with a
// SchemaMismatchError naming the first missing column.
func (d *Dataset) Value(row Row, column string) (string, error) {
	i, ok := columnIndex[column]
	if !ok {
		return "", fmt.Errorf("unknown source column %q", column)
	}
	if i >= len(row.Fields) {
		return "", &SchemaMismatchError{Line: row.Line, Column: Columns[len(row.Fields)], Found: len(row.Fields)}
	}
	return row.Fields[i], nil
}

// ReadFile opens and parses path.
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Read(path, f)
}

// Read parses a header-less CSV stream. A leading UTF-8 BOM is skipped and
// invalid UTF-8 bytes are replaced with '?'. Blank lines are ignored. Lines
// with more than ColumnCount fields fail with a SchemaMismatchError; short
// lines are reported when a missing column is read.
func Read(name string, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(skipBOM(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	ds := &Dataset{Name: name}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}

		line, _ := cr.FieldPos(0)
		if isEmptyRow(record) {
			continue
		}
		if len(record) > ColumnCount {
			return nil, &SchemaMismatchError{Line: line, Found: len(record)}
		}

		for i, v := range record {
			record[i] = strings.TrimSpace(strings.ToValidUTF8(v, "?"))
		}
		ds.Rows = append(ds.Rows, Row{Line: line, Fields: record})
	}

	return ds, nil
}

// skipBOM drops a UTF-8 byte order mark at the start of r.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
