package db

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const turnInfoColumns = `id, season, day, complete, active, finale, roll_start_time`

const listRelevantTurns = `
SELECT ` + turnInfoColumns + `
FROM turn_info
WHERE complete = TRUE OR active = TRUE
`

func (q *Queries) ListRelevantTurns(ctx context.Context) ([]TurnInfo, error) {
	return q.listTurns(ctx, listRelevantTurns)
}

const listAllTurns = `
SELECT ` + turnInfoColumns + `
FROM turn_info
ORDER BY id
`

func (q *Queries) ListAllTurns(ctx context.Context) ([]TurnInfo, error) {
	return q.listTurns(ctx, listAllTurns)
}

func (q *Queries) listTurns(ctx context.Context, query string) ([]TurnInfo, error) {
	rows, err := q.db.QueryContext(ctx, q.rebind(query))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []TurnInfo{}
	for rows.Next() {
		var i TurnInfo
		if err := rows.Scan(
			&i.ID,
			&i.Season,
			&i.Day,
			&i.Complete,
			&i.Active,
			&i.Finale,
			&i.RollStartTime,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const maxSeason = `
SELECT MAX(season) FROM turn_info
`

func (q *Queries) MaxSeason(ctx context.Context) (sql.NullInt64, error) {
	return q.aggregate(ctx, maxSeason)
}

const minActiveDay = `
SELECT MIN(day) FROM turn_info
WHERE season = ? AND complete = FALSE AND active = TRUE
`

func (q *Queries) MinActiveDay(ctx context.Context, season int64) (sql.NullInt64, error) {
	return q.aggregate(ctx, minActiveDay, season)
}

const maxDay = `
SELECT MAX(day) FROM turn_info
WHERE season = ?
`

func (q *Queries) MaxDay(ctx context.Context, season int64) (sql.NullInt64, error) {
	return q.aggregate(ctx, maxDay, season)
}

// aggregate scans a single-column aggregate. A missing row reads as NULL.
func (q *Queries) aggregate(ctx context.Context, query string, args ...interface{}) (sql.NullInt64, error) {
	var v sql.NullInt64
	err := q.db.QueryRowContext(ctx, q.rebind(query), args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.NullInt64{}, nil
	}
	return v, err
}

const insertTurnInfo = `
INSERT INTO turn_info (season, day, complete, active, finale, roll_start_time)
VALUES (?, ?, ?, ?, ?, ?)
`

type InsertTurnInfoParams struct {
	Season        sql.NullInt64
	Day           sql.NullInt64
	Complete      sql.NullBool
	Active        sql.NullBool
	Finale        sql.NullBool
	RollStartTime sql.NullTime
}

func (q *Queries) InsertTurnInfo(ctx context.Context, arg InsertTurnInfoParams) error {
	rollStart := arg.RollStartTime
	if rollStart.Valid {
		rollStart.Time = rollStart.Time.UTC().Truncate(time.Microsecond)
	}
	_, err := q.db.ExecContext(ctx, q.rebind(insertTurnInfo),
		arg.Season,
		arg.Day,
		arg.Complete,
		arg.Active,
		arg.Finale,
		rollStart,
	)
	return err
}
