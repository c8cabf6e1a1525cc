package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"risk-tracker/internal/config"
	"risk-tracker/internal/constants"
	"risk-tracker/internal/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*/*.sql
var embedMigrations embed.FS

func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	driverName, dsn := connectionTarget(cfg)
	logger.Info().Str("driver", cfg.DBDriver).Str("path", cfg.DBPath).Msg("connecting to database")

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB.SetMaxOpenConns(constants.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(constants.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		logger.Error().Err(err).Msg("failed to ping database")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		if err := optimizeSQLite(sqlDB, logger); err != nil {
			sqlDB.Close()
			logger.Error().Err(err).Msg("failed to optimize SQLite")
			return nil, fmt.Errorf("failed to optimize SQLite: %w", err)
		}
	}
	if err := runMigrations(ctx, sqlDB, cfg.DBDriver, logger); err != nil {
		sqlDB.Close()
		logger.Error().Err(err).Msg("failed to run migrations")
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info().Msg("database connection established")
	return sqlDB, nil
}

func NewQueries(sqlDB *sql.DB, cfg *config.Config) *db.Queries {
	return db.New(sqlDB, db.Dialect(cfg.DBDriver))
}

func connectionTarget(cfg *config.Config) (driverName, dsn string) {
	if cfg.DBDriver == config.DriverPostgres {
		return "pgx", cfg.DatabaseURL
	}
	return "sqlite3", cfg.DBPath
}

func runMigrations(ctx context.Context, sqlDB *sql.DB, driver string, logger zerolog.Logger) error {
	dialect := goose.DialectSQLite3
	if driver == config.DriverPostgres {
		dialect = goose.DialectPostgres
	}

	fsys, err := fs.Sub(embedMigrations, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("failed to open migrations for %s: %w", driver, err)
	}

	provider, err := goose.NewProvider(dialect, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("failed to create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	for _, r := range results {
		logger.Debug().
			Int64("version", r.Source.Version).
			Dur("duration", r.Duration).
			Msg("migration applied")
	}
	logger.Info().Int("applied", len(results)).Msg("migrations completed successfully")
	return nil
}

func optimizeSQLite(sqlDB *sql.DB, logger zerolog.Logger) error {
	pragmas := []struct {
		name  string
		value string
	}{
		{"journal_mode", "WAL"},
		{"synchronous", "NORMAL"},
		{"cache_size", "-64000"},
		{"busy_timeout", "5000"},
		{"foreign_keys", "ON"},
		{"temp_store", "MEMORY"},
	}

	for _, pragma := range pragmas {
		query := fmt.Sprintf("PRAGMA %s = %s", pragma.name, pragma.value)
		if _, err := sqlDB.Exec(query); err != nil {
			logger.Warn().
				Err(err).
				Str("pragma", pragma.name).
				Str("value", pragma.value).
				Msg("failed to set pragma")
			return fmt.Errorf("failed to set PRAGMA %s: %w", pragma.name, err)
		}
		logger.Debug().
			Str("pragma", pragma.name).
			Str("value", pragma.value).
			Msg("SQLite pragma set")
	}

	return nil
}
