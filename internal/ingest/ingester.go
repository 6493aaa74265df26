package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/dashboard/internal/config"
	"github.com/JonMunkholm/dashboard/internal/logging"
	"github.com/JonMunkholm/dashboard/internal/metrics"
	"github.com/JonMunkholm/dashboard/internal/store"
	"github.com/google/uuid"
)

// Store is the subset of *store.DB the loader writes through.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Reset(ctx context.Context) error
	Countries(ctx context.Context) ([]store.Country, error)
	InsertCountries(ctx context.Context, countries []store.Country) error
	CopyFacts(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
}

// TableResult is the outcome of one domain load.
type TableResult struct {
	Domain string
	Table  string
	Rows   int64
}

// FileResult is the outcome of one file.
type FileResult struct {
	Path         string
	Rows         int
	NewCountries int
	Tables       []TableResult
	Duration     time.Duration
	Err          error
}

// Report summarizes a run. Files holds one entry per attempted file; the
// run stops after the first failure.
type Report struct {
	RunID string
	Files []FileResult
}

// Failed reports whether any file failed.
func (r *Report) Failed() bool {
	for _, f := range r.Files {
		if f.Err != nil {
			return true
		}
	}
	return false
}

// Ingester loads source files into the store.
type Ingester struct {
	store Store
	cfg   config.IngestConfig
}

// New creates an Ingester.
func New(st Store, cfg config.IngestConfig) *Ingester {
	return &Ingester{store: st, cfg: cfg}
}

// Reset drops and recreates every table.
func (in *Ingester) Reset(ctx context.Context) error {
	if in.cfg.ResetTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, in.cfg.ResetTimeout)
		defer cancel()
	}
	return in.store.Reset(ctx)
}

// Run loads paths in order. It stops at the first failing file and returns
// that file's error; files loaded before it stay committed.
func (in *Ingester) Run(ctx context.Context, paths []string) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	log := logging.WithFields(ctx, "run_id", report.RunID)

	if err := in.store.EnsureSchema(ctx); err != nil {
		return report, fmt.Errorf("prepare schema: %w", err)
	}

	existing, err := in.store.Countries(ctx)
	if err != nil {
		return report, fmt.Errorf("load countries: %w", err)
	}
	resolver := NewResolver(existing)
	log.Info("ingest started", "files", len(paths), "known_countries", len(existing))

	for _, path := range paths {
		result := in.loadPath(ctx, resolver, path)
		report.Files = append(report.Files, result)

		if result.Err != nil {
			metrics.IngestFiles.WithLabelValues("failed").Inc()
			log.Error("file failed", "file", path, "error", result.Err)
			return report, fmt.Errorf("%s: %w", path, result.Err)
		}

		metrics.IngestFiles.WithLabelValues("loaded").Inc()
		log.Info("file loaded",
			"file", path,
			"rows", result.Rows,
			"new_countries", result.NewCountries,
			"known_countries", resolver.Len(),
			"duration_ms", result.Duration.Milliseconds(),
		)
	}

	return report, nil
}

func (in *Ingester) loadPath(ctx context.Context, resolver *Resolver, path string) FileResult {
	ds, err := ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}
	return in.loadDataset(ctx, resolver, ds)
}

// Load reads one file from r and loads it with ids continuing from the
// stored countries.
func (in *Ingester) Load(ctx context.Context, name string, r io.Reader) (FileResult, error) {
	if err := in.store.EnsureSchema(ctx); err != nil {
		return FileResult{Path: name, Err: err}, fmt.Errorf("prepare schema: %w", err)
	}

	existing, err := in.store.Countries(ctx)
	if err != nil {
		return FileResult{Path: name, Err: err}, fmt.Errorf("load countries: %w", err)
	}

	ds, err := Read(name, r)
	if err != nil {
		return FileResult{Path: name, Err: err}, err
	}

	result := in.loadDataset(ctx, NewResolver(existing), ds)
	return result, result.Err
}

// loadDataset validates every domain before writing anything, then writes
// the new countries followed by one transaction per domain.
func (in *Ingester) loadDataset(ctx context.Context, resolver *Resolver, ds *Dataset) FileResult {
	start := time.Now()
	result := FileResult{Path: ds.Name, Rows: len(ds.Rows)}

	if in.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, in.cfg.Timeout)
		defer cancel()
	}

	fail := func(err error) FileResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := resolver.Resolve(ds); err != nil {
		resolver.Discard()
		return fail(err)
	}

	batches := make([]Batch, 0, len(Domains))
	for _, d := range Domains {
		b, err := FactLoader{Domain: d}.Prepare(ds, resolver)
		if err != nil {
			resolver.Discard()
			return fail(err)
		}
		batches = append(batches, b)
	}

	pending := resolver.Pending()
	if err := in.store.InsertCountries(ctx, pending); err != nil {
		resolver.Discard()
		return fail(err)
	}
	resolver.Commit()
	result.NewCountries = len(pending)

	log := logging.WithFields(ctx, "file", ds.Name)
	for _, b := range batches {
		n, err := in.store.CopyFacts(ctx, b.Domain.Table, b.Columns, b.Rows)
		if err != nil {
			return fail(fmt.Errorf("load %s: %w", b.Domain.Name, err))
		}
		metrics.IngestRows.WithLabelValues(b.Domain.Table).Add(float64(n))
		result.Tables = append(result.Tables, TableResult{Domain: b.Domain.Name, Table: b.Domain.Table, Rows: n})
		log.Debug("domain loaded", "table", b.Domain.Table, "rows", n)
	}

	result.Duration = time.Since(start)
	return result
}
