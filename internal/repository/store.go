package repository

import (
	"context"
	"database/sql"
	"risk-tracker/internal/db"
	"time"
)

// TurnStore is the slice of the record store the turn readers need.
// *db.Queries satisfies it.
type TurnStore interface {
	ListRelevantTurns(ctx context.Context) ([]db.TurnInfo, error)
	ListAllTurns(ctx context.Context) ([]db.TurnInfo, error)
	MaxSeason(ctx context.Context) (sql.NullInt64, error)
	MinActiveDay(ctx context.Context, season int64) (sql.NullInt64, error)
	MaxDay(ctx context.Context, season int64) (sql.NullInt64, error)
}

type RollStore interface {
	ListRollsByTurn(ctx context.Context, arg db.ListRollsByTurnParams) ([]db.RollInfo, error)
}

type PastTurnStore interface {
	ListPastTurnsByUser(ctx context.Context, userID int64) ([]db.PastTurnRow, error)
}

var (
	_ TurnStore     = (*db.Queries)(nil)
	_ RollStore     = (*db.Queries)(nil)
	_ PastTurnStore = (*db.Queries)(nil)
)

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
