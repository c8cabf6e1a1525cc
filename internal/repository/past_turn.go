package repository

import (
	"context"
	"risk-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type PastTurnRepository struct {
	store  PastTurnStore
	logger zerolog.Logger
}

func NewPastTurnRepository(store PastTurnStore, logger zerolog.Logger) *PastTurnRepository {
	return &PastTurnRepository{
		store:  store,
		logger: logger,
	}
}

func (r *PastTurnRepository) ListByUser(ctx context.Context, userID int) ([]domain.PastTurn, error) {
	rows, err := r.store.ListPastTurnsByUser(ctx, int64(userID))
	if err != nil {
		r.logger.Error().Err(err).Int("user_id", userID).Msg("failed to list past turns")
		return nil, domain.NewStoreError("list past turns", err)
	}

	result := make([]domain.PastTurn, len(rows))
	for i, row := range rows {
		result[i] = domain.PastTurn{
			Season:    intPtr(row.Season),
			Day:       intPtr(row.Day),
			Stars:     intPtr(row.Stars),
			MVP:       row.Mvp,
			Territory: row.Territory,
			Team:      stringPtr(row.Team),
		}
	}
	return result, nil
}
