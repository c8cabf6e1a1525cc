package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"risk-tracker/internal/constants"
	"risk-tracker/internal/db"
	"risk-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type RollRepository struct {
	store  RollStore
	logger zerolog.Logger
}

func NewRollRepository(store RollStore, logger zerolog.Logger) *RollRepository {
	return &RollRepository{
		store:  store,
		logger: logger,
	}
}

// Load returns the roll for exactly (season, day). When the table holds more
// than one row for the pair the lowest id wins.
func (r *RollRepository) Load(ctx context.Context, season, day int) (domain.Roll, error) {
	rows, err := r.store.ListRollsByTurn(ctx, db.ListRollsByTurnParams{
		Season: int64(season),
		Day:    int64(day),
		Limit:  constants.RollLookupLimit,
	})
	if err != nil {
		r.logger.Error().Err(err).Int("season", season).Int("day", day).Msg("failed to load roll")
		return domain.Roll{}, domain.NewStoreError("load roll", err)
	}
	if len(rows) == 0 {
		return domain.Roll{}, fmt.Errorf("roll for season %d day %d: %w", season, day, domain.ErrNotFound)
	}
	if len(rows) > 1 {
		r.logger.Warn().
			Int("season", season).
			Int("day", day).
			Int64("used_id", rows[0].ID).
			Int64("duplicate_id", rows[1].ID).
			Msg("duplicate roll rows, using lowest id")
	}

	row := rows[0]
	return domain.Roll{
		StartTime:      row.RollStartTime,
		EndTime:        row.RollEndTime,
		ChaosRerolls:   int(row.ChaosRerolls),
		ChaosWeight:    int(row.ChaosWeight),
		TerritoryRolls: json.RawMessage(row.TerritoryRolls),
	}, nil
}
