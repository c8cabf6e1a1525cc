package fx

import (
	"risk-tracker/internal/config"
	"risk-tracker/internal/database"
	"risk-tracker/internal/db"
	"risk-tracker/internal/logger"
	"risk-tracker/internal/repository"
	"risk-tracker/internal/server"
	"risk-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideTurnRepository(queries *db.Queries, logger zerolog.Logger) *repository.TurnRepository {
	return repository.NewTurnRepository(queries, logger)
}

func ProvideRollRepository(queries *db.Queries, logger zerolog.Logger) *repository.RollRepository {
	return repository.NewRollRepository(queries, logger)
}

func ProvidePastTurnRepository(queries *db.Queries, logger zerolog.Logger) *repository.PastTurnRepository {
	return repository.NewPastTurnRepository(queries, logger)
}

// StoreModule provides configuration, logging and the migrated database.
var StoreModule = fx.Options(
	config.Module,
	logger.Module,
	fx.Provide(database.New),
	fx.Provide(database.NewQueries),
)

var Module = fx.Options(
	StoreModule,
	// repos
	fx.Provide(ProvideTurnRepository),
	fx.Provide(ProvideRollRepository),
	fx.Provide(ProvidePastTurnRepository),
	// svc
	fx.Provide(service.NewTurnService),
	// server
	fx.Provide(server.NewTurnServer),
)
