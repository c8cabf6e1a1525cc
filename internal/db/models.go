package db

import (
	"database/sql"
)

type TurnInfo struct {
	ID            int64
	Season        sql.NullInt64
	Day           sql.NullInt64
	Complete      sql.NullBool
	Active        sql.NullBool
	Finale        sql.NullBool
	RollStartTime sql.NullTime
}

type RollInfo struct {
	ID             int64
	Season         int64
	Day            int64
	RollStartTime  string
	RollEndTime    string
	ChaosRerolls   int64
	ChaosWeight    int64
	TerritoryRolls []byte
}

type PastTurnRow struct {
	Season    sql.NullInt64
	Day       sql.NullInt64
	Stars     sql.NullInt64
	Mvp       bool
	Territory string
	Team      sql.NullString
}
