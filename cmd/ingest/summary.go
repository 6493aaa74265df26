package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/dashboard/internal/ingest"
	"github.com/olekukonko/tablewriter"
)

// printSummary writes one row per loaded table and one per failed file.
func printSummary(w io.Writer, report *ingest.Report) {
	if report == nil || len(report.Files) == 0 {
		return
	}

	fmt.Fprintln(w, "Run:", report.RunID)

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetHeader([]string{"File", "Domain", "Table", "Rows", "New\nCountries", "Duration"})

	for _, f := range report.Files {
		name := filepath.Base(f.Path)
		if f.Err != nil {
			table.Append([]string{name, "-", "-", "-", "-", "FAILED"})
			continue
		}
		for i, t := range f.Tables {
			newCountries, duration := "", ""
			if i == 0 {
				newCountries = fmt.Sprintf("%d", f.NewCountries)
				duration = f.Duration.Round(time.Millisecond).String()
			}
			table.Append([]string{name, t.Domain, t.Table, fmt.Sprintf("%d", t.Rows), newCountries, duration})
		}
	}
	table.Render()
}
