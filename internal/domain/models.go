package domain

import (
	"encoding/json"
	"time"
)

// TurnInfo is one scheduled (season, day). Every column may be NULL while the
// schedule is being seeded.
type TurnInfo struct {
	ID            int
	Season        *int
	Day           *int
	Complete      *bool
	Active        *bool
	Finale        *bool
	RollStartTime *time.Time
}

// Latest is the (season, day) the game treats as "now". It is derived on
// every call and {0, 0} means no game state yet.
type Latest struct {
	Season int
	Day    int
}

type Roll struct {
	StartTime    string
	EndTime      string
	ChaosRerolls int
	ChaosWeight  int
	// TerritoryRolls is owned by the roll producer and passed through untouched.
	TerritoryRolls json.RawMessage
}

// PastTurn is a player's outcome for one day, with territory and team
// resolved to display names.
type PastTurn struct {
	Season    *int
	Day       *int
	Stars     *int
	MVP       bool
	Territory string
	Team      *string
}

// NewTurn is the write shape of a past turn. Territory and Team are ids here,
// names on the read side.
type NewTurn struct {
	UserID     *int
	Season     *int
	Day        *int
	Territory  *int
	MVP        bool
	Power      *float64
	Multiplier *float64
	Weight     *int
	Stars      *int
	Team       *int
}
