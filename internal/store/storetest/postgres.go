// Package storetest starts a disposable PostgreSQL container for tests that
// need a real database.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/JonMunkholm/dashboard/internal/config"
	"github.com/JonMunkholm/dashboard/internal/store"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// New returns a DB backed by a fresh postgres:16-alpine container with the
// schema applied. The test is skipped under -short or when no container
// runtime is available.
func New(t *testing.T) *store.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("dashboard"),
		postgres.WithUsername("dashboard"),
		postgres.WithPassword("dashboard"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to cleanup postgres container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := store.Open(ctx, config.DatabaseConfig{URL: dsn, MaxConns: 4, MinConns: 1, ConnectTimeout: 30 * time.Second})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.EnsureSchema(ctx))
	return db
}
