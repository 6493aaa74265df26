// Package store is the PostgreSQL access layer shared by the API server and
// the CSV loader. Reads run in short-lived READ ONLY transactions; writes go
// through the COPY protocol, one transaction per call.
package store

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/JonMunkholm/dashboard/internal/config"
	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// CountryTable is the name of the country dimension table.
const CountryTable = "country"

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Country is one row of the country dimension.
type Country struct {
	ID   int64
	Name string
}

// DB wraps a pgx connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Open parses the connection string, applies the pool settings and verifies
// connectivity. Reads issued later through the DB are never retried.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	// The database may still be starting; retry until ConnectTimeout.
	opts := []backoff.RetryOption{backoff.WithBackOff(backoff.NewExponentialBackOff())}
	if cfg.ConnectTimeout > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(cfg.ConnectTimeout))
	} else {
		opts = append(opts, backoff.WithMaxTries(1))
	}

	attempt := 0
	pool, err := backoff.Retry(ctx, func() (*pgxpool.Pool, error) {
		attempt++
		if attempt > 1 {
			slog.Warn("database not reachable, retrying", "attempt", attempt)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("connect to database: %w", err))
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		return pool, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	return &DB{pool: pool}, nil
}

// Pool returns the underlying pool.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// Close releases every pooled connection.
func (db *DB) Close() {
	db.pool.Close()
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// QueryRows runs a read query in its own READ ONLY transaction and returns
// every row as decoded values in select-list order.
func (db *DB) QueryRows(ctx context.Context, sql string, args ...any) ([][]any, error) {
	tx, err := db.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin read transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	out := make([][]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit read transaction: %w", err)
	}
	return out, nil
}

// Countries returns every stored country ordered by id.
func (db *DB) Countries(ctx context.Context) ([]Country, error) {
	return listCountries(ctx, db.pool)
}

func listCountries(ctx context.Context, q DBTX) ([]Country, error) {
	rows, err := q.Query(ctx, `SELECT "id", "name" FROM "country" ORDER BY "id"`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var countries []Country
	for rows.Next() {
		var c Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

// InsertCountries persists new countries in a single transaction.
func (db *DB) InsertCountries(ctx context.Context, countries []Country) error {
	if len(countries) == 0 {
		return nil
	}

	rows := make([][]any, len(countries))
	for i, c := range countries {
		rows[i] = []any{c.ID, c.Name}
	}

	if _, err := db.copyRows(ctx, CountryTable, []string{"id", "name"}, rows); err != nil {
		return fmt.Errorf("insert countries: %w", err)
	}
	return nil
}

// CopyFacts bulk loads rows into a fact table using the COPY protocol.
// All rows commit together or not at all.
func (db *DB) CopyFacts(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := db.copyRows(ctx, table, columns, rows)
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", table, err)
	}
	return n, nil
}

func (db *DB) copyRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

// EnsureSchema creates any missing table or index.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Reset drops every table in the current schema, including tables the
// schema file does not know about, then recreates the schema.
func (db *DB) Reset(ctx context.Context) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	rows, err := tx.Query(ctx, `SELECT tablename FROM pg_tables WHERE schemaname = current_schema()`)
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}

	for _, name := range tables {
		if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+pgx.Identifier{name}.Sanitize()+" CASCADE"); err != nil {
			return fmt.Errorf("drop table %s: %w", name, err)
		}
	}

	if _, err := tx.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("recreate schema: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}

	slog.Info("database reset", "dropped_tables", len(tables))
	return nil
}
