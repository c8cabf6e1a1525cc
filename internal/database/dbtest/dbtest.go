// Package dbtest opens throwaway SQLite stores for tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"risk-tracker/internal/config"
	"risk-tracker/internal/database"
	"risk-tracker/internal/db"
	"risk-tracker/internal/seed"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Open returns a migrated SQLite database in the test's temp dir.
func Open(t *testing.T) (*sql.DB, *db.Queries) {
	t.Helper()

	cfg := &config.Config{
		DBDriver:     config.DriverSQLite,
		DBPath:       filepath.Join(t.TempDir(), "risk.db"),
		QueryTimeout: 5 * time.Second,
	}

	sqlDB, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return sqlDB, database.NewQueries(sqlDB, cfg)
}

// Seed applies fixture and fails the test on error.
func Seed(t *testing.T, sqlDB *sql.DB, queries *db.Queries, fixture *seed.Fixture) {
	t.Helper()

	_, err := seed.Apply(context.Background(), sqlDB, queries, fixture, zerolog.Nop())
	require.NoError(t, err)
}

// Turn builds a fixture turn with every column set.
func Turn(season, day int, complete, active bool) seed.Turn {
	return seed.Turn{
		Season:   Ptr(season),
		Day:      Ptr(day),
		Complete: Ptr(complete),
		Active:   Ptr(active),
		Finale:   Ptr(false),
	}
}

func Ptr[T any](v T) *T { return &v }
