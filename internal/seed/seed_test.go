package seed_test

import (
	"context"
	"risk-tracker/internal/database/dbtest"
	"risk-tracker/internal/seed"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
territories:
  - {id: 1, name: Texas}
teams:
  - {id: 10, name: Longhorns}
turns:
  - season: 1
    day: 1
    complete: true
    active: false
    roll_start_time: 2020-04-01T04:00:00Z
  - {season: 1, day: 2, complete: false, active: true}
  - {day: 3}
rolls:
  - season: 1
    day: 1
    start_time: "2020-04-01 04:00:00"
    end_time: "2020-04-01 04:00:12"
    chaos_rerolls: 2
    chaos_weight: 5
    territory_rolls:
      - {territory: Texas, winner: Longhorns}
past_turns:
  - {user_id: 7, season: 1, day: 1, territory: 1, team: 10, mvp: true, power: 12.5, stars: 3}
`

func TestParse(t *testing.T) {
	t.Parallel()

	fixture, err := seed.Parse([]byte(fixtureYAML))
	require.NoError(t, err)
	require.Len(t, fixture.Turns, 3)
	require.Nil(t, fixture.Turns[2].Season)
	require.Equal(t, 3, *fixture.Turns[2].Day)
	require.NotNil(t, fixture.Turns[0].RollStartTime)
	require.True(t, time.Date(2020, 4, 1, 4, 0, 0, 0, time.UTC).Equal(*fixture.Turns[0].RollStartTime))

	newTurn := fixture.PastTurns[0].NewTurn()
	require.Equal(t, 1, *newTurn.Territory)
	require.Equal(t, 10, *newTurn.Team)
	require.InDelta(t, 12.5, *newTurn.Power, 1e-9)
	require.Nil(t, newTurn.Multiplier)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := seed.Parse([]byte("turns: [unterminated"))
	require.Error(t, err)
}

func TestApply(t *testing.T) {
	t.Parallel()

	fixture, err := seed.Parse([]byte(fixtureYAML))
	require.NoError(t, err)

	sqlDB, queries := dbtest.Open(t)
	ctx := context.Background()

	counts, err := seed.Apply(ctx, sqlDB, queries, fixture, zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, seed.Counts{Territories: 1, Teams: 1, Turns: 3, Rolls: 1, PastTurns: 1}, counts)

	turns, err := queries.ListAllTurns(ctx)
	require.NoError(t, err)
	require.Len(t, turns, 3)

	past, err := queries.ListPastTurnsByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, past, 1)
	require.Equal(t, "Texas", past[0].Territory)
	require.Equal(t, "Longhorns", past[0].Team.String)
}

func TestApplyRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	sqlDB, queries := dbtest.Open(t)
	ctx := context.Background()

	fixture := &seed.Fixture{
		Turns:       []seed.Turn{dbtest.Turn(1, 1, false, true)},
		Territories: []seed.Named{{ID: 1, Name: "Texas"}, {ID: 1, Name: "Duplicate"}},
	}

	_, err := seed.Apply(ctx, sqlDB, queries, fixture, zerolog.Nop())
	require.Error(t, err)

	turns, err := queries.ListAllTurns(ctx)
	require.NoError(t, err)
	require.Empty(t, turns)
}
