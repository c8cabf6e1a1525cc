package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	DBDriver       string        `env:"DB_DRIVER" envDefault:"sqlite3"`
	DBPath         string        `env:"DB_PATH" envDefault:"risk.db"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	ServerPort     string        `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	QueryTimeout   time.Duration `env:"QUERY_TIMEOUT" envDefault:"5s"`

	dotEnvLoaded bool
}

func Load() (*Config, error) {
	loaded := godotenv.Load() == nil

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.dotEnvLoaded = loaded

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for driver %s", c.DBDriver)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for driver %s", c.DBDriver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (use %s or %s)", c.DBDriver, DriverSQLite, DriverPostgres)
	}

	if c.QueryTimeout <= 0 {
		return fmt.Errorf("QUERY_TIMEOUT must be positive, got %s", c.QueryTimeout)
	}
	return nil
}

// LogLoaded reports the effective configuration once the logger exists.
func LogLoaded(cfg *Config, logger zerolog.Logger) {
	if !cfg.dotEnvLoaded {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	logger.Info().
		Str("db_driver", cfg.DBDriver).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Dur("query_timeout", cfg.QueryTimeout).
		Msg("configuration loaded")
}

var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(LogLoaded),
)
