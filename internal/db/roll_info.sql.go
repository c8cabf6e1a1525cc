package db

import (
	"context"
	"fmt"
)

const listRollsByTurn = `
SELECT id, season, day, roll_start_time, roll_end_time, chaos_rerolls, chaos_weight, territory_rolls
FROM roll_info
WHERE season = ? AND day = ?
ORDER BY id
LIMIT ?
`

type ListRollsByTurnParams struct {
	Season int64
	Day    int64
	Limit  int64
}

func (q *Queries) ListRollsByTurn(ctx context.Context, arg ListRollsByTurnParams) ([]RollInfo, error) {
	rows, err := q.db.QueryContext(ctx, q.rebind(listRollsByTurn), arg.Season, arg.Day, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []RollInfo{}
	for rows.Next() {
		var i RollInfo
		if err := rows.Scan(
			&i.ID,
			&i.Season,
			&i.Day,
			&i.RollStartTime,
			&i.RollEndTime,
			&i.ChaosRerolls,
			&i.ChaosWeight,
			&i.TerritoryRolls,
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

const insertRollInfo = `
INSERT INTO roll_info (season, day, roll_start_time, roll_end_time, chaos_rerolls, chaos_weight, territory_rolls)
VALUES (?, ?, ?, ?, ?, ?, %s)
`

type InsertRollInfoParams struct {
	Season         int64
	Day            int64
	RollStartTime  string
	RollEndTime    string
	ChaosRerolls   int64
	ChaosWeight    int64
	TerritoryRolls []byte
}

func (q *Queries) InsertRollInfo(ctx context.Context, arg InsertRollInfoParams) error {
	query := q.rebind(fmt.Sprintf(insertRollInfo, q.jsonParam()))
	_, err := q.db.ExecContext(ctx, query,
		arg.Season,
		arg.Day,
		arg.RollStartTime,
		arg.RollEndTime,
		arg.ChaosRerolls,
		arg.ChaosWeight,
		string(arg.TerritoryRolls),
	)
	return err
}
