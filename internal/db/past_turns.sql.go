package db

import (
	"context"
	"database/sql"
)

const listPastTurnsByUser = `
SELECT p.season, p.day, p.stars, p.mvp, COALESCE(t.name, ''), tm.tname
FROM past_turns p
LEFT JOIN territories t ON t.id = p.territory
LEFT JOIN teams tm ON tm.id = p.team
WHERE p.user_id = ?
ORDER BY p.season, p.day, p.id
`

func (q *Queries) ListPastTurnsByUser(ctx context.Context, userID int64) ([]PastTurnRow, error) {
	rows, err := q.db.QueryContext(ctx, q.rebind(listPastTurnsByUser), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []PastTurnRow{}
	for rows.Next() {
		var i PastTurnRow
		if err := rows.Scan(
			&i.Season,
			&i.Day,
			&i.Stars,
			&i.Mvp,
			&i.Territory,
			&i.Team,
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

const insertPastTurn = `
INSERT INTO past_turns (user_id, season, day, territory, mvp, power, multiplier, weight, stars, team)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertPastTurnParams struct {
	UserID     sql.NullInt64
	Season     sql.NullInt64
	Day        sql.NullInt64
	Territory  sql.NullInt64
	Mvp        bool
	Power      sql.NullFloat64
	Multiplier sql.NullFloat64
	Weight     sql.NullInt64
	Stars      sql.NullInt64
	Team       sql.NullInt64
}

func (q *Queries) InsertPastTurn(ctx context.Context, arg InsertPastTurnParams) error {
	_, err := q.db.ExecContext(ctx, q.rebind(insertPastTurn),
		arg.UserID,
		arg.Season,
		arg.Day,
		arg.Territory,
		arg.Mvp,
		arg.Power,
		arg.Multiplier,
		arg.Weight,
		arg.Stars,
		arg.Team,
	)
	return err
}

const insertTerritory = `
INSERT INTO territories (id, name) VALUES (?, ?)
`

func (q *Queries) InsertTerritory(ctx context.Context, id int64, name string) error {
	_, err := q.db.ExecContext(ctx, q.rebind(insertTerritory), id, name)
	return err
}

const insertTeam = `
INSERT INTO teams (id, tname) VALUES (?, ?)
`

func (q *Queries) InsertTeam(ctx context.Context, id int64, name string) error {
	_, err := q.db.ExecContext(ctx, q.rebind(insertTeam), id, name)
	return err
}
