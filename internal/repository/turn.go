package repository

import (
	"context"
	"risk-tracker/internal/db"
	"risk-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type TurnRepository struct {
	store  TurnStore
	logger zerolog.Logger
}

func NewTurnRepository(store TurnStore, logger zerolog.Logger) *TurnRepository {
	return &TurnRepository{
		store:  store,
		logger: logger,
	}
}

// LoadRelevant returns the turns that are complete or active.
func (r *TurnRepository) LoadRelevant(ctx context.Context) ([]domain.TurnInfo, error) {
	rows, err := r.store.ListRelevantTurns(ctx)
	if err != nil {
		return nil, domain.NewStoreError("list relevant turns", err)
	}
	return mapTurns(rows), nil
}

// LoadAll returns every turn ordered by id.
func (r *TurnRepository) LoadAll(ctx context.Context) ([]domain.TurnInfo, error) {
	rows, err := r.store.ListAllTurns(ctx)
	if err != nil {
		return nil, domain.NewStoreError("list all turns", err)
	}
	return mapTurns(rows), nil
}

// Latest resolves the current (season, day).
//
// The newest season wins. Within it the earliest day that is active but not
// complete is current; when there is none the highest day of the season is
// used, and any failure of that fallback reads as day 0. With no seasons at
// all the result is {0, 0}.
func (r *TurnRepository) Latest(ctx context.Context) (domain.Latest, error) {
	season, err := r.store.MaxSeason(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query max season")
		return domain.Latest{}, domain.NewStoreError("max season", err)
	}
	if !season.Valid {
		r.logger.Debug().Msg("no seasons recorded, returning zero pointer")
		return domain.Latest{}, nil
	}

	day, err := r.store.MinActiveDay(ctx, season.Int64)
	if err != nil {
		r.logger.Error().Err(err).Int64("season", season.Int64).Msg("failed to query active day")
		return domain.Latest{}, domain.NewStoreError("min active day", err)
	}
	if day.Valid {
		return domain.Latest{Season: int(season.Int64), Day: int(day.Int64)}, nil
	}

	last, err := r.store.MaxDay(ctx, season.Int64)
	if err != nil {
		r.logger.Warn().Err(err).Int64("season", season.Int64).Msg("failed to query max day, defaulting to 0")
		return domain.Latest{Season: int(season.Int64)}, nil
	}
	if !last.Valid {
		return domain.Latest{Season: int(season.Int64)}, nil
	}

	r.logger.Debug().
		Int64("season", season.Int64).
		Int64("day", last.Int64).
		Msg("no active day, using last day of season")

	return domain.Latest{Season: int(season.Int64), Day: int(last.Int64)}, nil
}

func mapTurns(rows []db.TurnInfo) []domain.TurnInfo {
	result := make([]domain.TurnInfo, len(rows))
	for i, row := range rows {
		result[i] = domain.TurnInfo{
			ID:            int(row.ID),
			Season:        intPtr(row.Season),
			Day:           intPtr(row.Day),
			Complete:      boolPtr(row.Complete),
			Active:        boolPtr(row.Active),
			Finale:        boolPtr(row.Finale),
			RollStartTime: timePtr(row.RollStartTime),
		}
	}
	return result
}
