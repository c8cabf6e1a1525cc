package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"risk-tracker/internal/constants"
	"risk-tracker/internal/db"
	"risk-tracker/internal/domain"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Fixture is the YAML layout accepted by the seed tool.
type Fixture struct {
	Territories []Named    `yaml:"territories"`
	Teams       []Named    `yaml:"teams"`
	Turns       []Turn     `yaml:"turns"`
	Rolls       []Roll     `yaml:"rolls"`
	PastTurns   []PastTurn `yaml:"past_turns"`
}

type Named struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

type Turn struct {
	Season        *int       `yaml:"season"`
	Day           *int       `yaml:"day"`
	Complete      *bool      `yaml:"complete"`
	Active        *bool      `yaml:"active"`
	Finale        *bool      `yaml:"finale"`
	RollStartTime *time.Time `yaml:"roll_start_time"`
}

type Roll struct {
	Season       int    `yaml:"season"`
	Day          int    `yaml:"day"`
	StartTime    string `yaml:"start_time"`
	EndTime      string `yaml:"end_time"`
	ChaosRerolls int    `yaml:"chaos_rerolls"`
	ChaosWeight  int    `yaml:"chaos_weight"`
	// TerritoryRolls is any YAML value; it is stored as JSON.
	TerritoryRolls any `yaml:"territory_rolls"`
}

type PastTurn struct {
	UserID     *int     `yaml:"user_id"`
	Season     *int     `yaml:"season"`
	Day        *int     `yaml:"day"`
	Territory  *int     `yaml:"territory"`
	MVP        bool     `yaml:"mvp"`
	Power      *float64 `yaml:"power"`
	Multiplier *float64 `yaml:"multiplier"`
	Weight     *int     `yaml:"weight"`
	Stars      *int     `yaml:"stars"`
	Team       *int     `yaml:"team"`
}

func (p PastTurn) NewTurn() domain.NewTurn {
	return domain.NewTurn{
		UserID:     p.UserID,
		Season:     p.Season,
		Day:        p.Day,
		Territory:  p.Territory,
		MVP:        p.MVP,
		Power:      p.Power,
		Multiplier: p.Multiplier,
		Weight:     p.Weight,
		Stars:      p.Stars,
		Team:       p.Team,
	}
}

func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fixture: %w", err)
	}
	return &fixture, nil
}

type Counts struct {
	Territories int
	Teams       int
	Turns       int
	Rolls       int
	PastTurns   int
}

// Apply writes the fixture in a single transaction.
func Apply(ctx context.Context, sqlDB *sql.DB, queries *db.Queries, fixture *Fixture, logger zerolog.Logger) (Counts, error) {
	var counts Counts

	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return counts, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := queries.WithTx(tx)

	for _, t := range fixture.Territories {
		if err := qtx.InsertTerritory(ctx, t.ID, t.Name); err != nil {
			return counts, fmt.Errorf("failed to insert territory %d: %w", t.ID, err)
		}
		counts.Territories++
	}

	for _, t := range fixture.Teams {
		if err := qtx.InsertTeam(ctx, t.ID, t.Name); err != nil {
			return counts, fmt.Errorf("failed to insert team %d: %w", t.ID, err)
		}
		counts.Teams++
	}

	for i, t := range fixture.Turns {
		err := qtx.InsertTurnInfo(ctx, db.InsertTurnInfoParams{
			Season:        nullInt(t.Season),
			Day:           nullInt(t.Day),
			Complete:      nullBool(t.Complete),
			Active:        nullBool(t.Active),
			Finale:        nullBool(t.Finale),
			RollStartTime: nullTime(t.RollStartTime),
		})
		if err != nil {
			return counts, fmt.Errorf("failed to insert turn #%d: %w", i, err)
		}
		counts.Turns++
	}

	for _, r := range fixture.Rolls {
		payload, err := encodeTerritoryRolls(r.TerritoryRolls)
		if err != nil {
			return counts, fmt.Errorf("roll season %d day %d: %w", r.Season, r.Day, err)
		}
		err = qtx.InsertRollInfo(ctx, db.InsertRollInfoParams{
			Season:         int64(r.Season),
			Day:            int64(r.Day),
			RollStartTime:  r.StartTime,
			RollEndTime:    r.EndTime,
			ChaosRerolls:   int64(r.ChaosRerolls),
			ChaosWeight:    int64(r.ChaosWeight),
			TerritoryRolls: payload,
		})
		if err != nil {
			return counts, fmt.Errorf("failed to insert roll season %d day %d: %w", r.Season, r.Day, err)
		}
		counts.Rolls++
	}

	for i := 0; i < len(fixture.PastTurns); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(fixture.PastTurns))

		for j, p := range fixture.PastTurns[i:end] {
			if err := qtx.InsertPastTurn(ctx, PastTurnParams(p.NewTurn())); err != nil {
				return counts, fmt.Errorf("failed to insert past turn #%d: %w", i+j, err)
			}
			counts.PastTurns++
		}
		logger.Debug().Int("inserted", counts.PastTurns).Msg("past turns batch written")
	}

	if err := tx.Commit(); err != nil {
		return Counts{}, fmt.Errorf("failed to commit seed: %w", err)
	}

	logger.Info().
		Int("territories", counts.Territories).
		Int("teams", counts.Teams).
		Int("turns", counts.Turns).
		Int("rolls", counts.Rolls).
		Int("past_turns", counts.PastTurns).
		Msg("seed applied")

	return counts, nil
}

// PastTurnParams maps the write shape onto the insert row.
func PastTurnParams(t domain.NewTurn) db.InsertPastTurnParams {
	return db.InsertPastTurnParams{
		UserID:     nullInt(t.UserID),
		Season:     nullInt(t.Season),
		Day:        nullInt(t.Day),
		Territory:  nullInt(t.Territory),
		Mvp:        t.MVP,
		Power:      nullFloat(t.Power),
		Multiplier: nullFloat(t.Multiplier),
		Weight:     nullInt(t.Weight),
		Stars:      nullInt(t.Stars),
		Team:       nullInt(t.Team),
	}
}

func encodeTerritoryRolls(v any) ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode territory rolls: %w", err)
	}
	return data, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
