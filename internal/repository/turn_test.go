package repository

import (
	"context"
	"database/sql"
	"errors"
	"risk-tracker/internal/database/dbtest"
	"risk-tracker/internal/db"
	"risk-tracker/internal/domain"
	"risk-tracker/internal/seed"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type mockTurnStore struct {
	listRelevantFn func(ctx context.Context) ([]db.TurnInfo, error)
	listAllFn      func(ctx context.Context) ([]db.TurnInfo, error)
	maxSeasonFn    func(ctx context.Context) (sql.NullInt64, error)
	minActiveDayFn func(ctx context.Context, season int64) (sql.NullInt64, error)
	maxDayFn       func(ctx context.Context, season int64) (sql.NullInt64, error)
}

func (m *mockTurnStore) ListRelevantTurns(ctx context.Context) ([]db.TurnInfo, error) {
	if m.listRelevantFn == nil {
		panic("listRelevantFn not configured")
	}
	return m.listRelevantFn(ctx)
}

func (m *mockTurnStore) ListAllTurns(ctx context.Context) ([]db.TurnInfo, error) {
	if m.listAllFn == nil {
		panic("listAllFn not configured")
	}
	return m.listAllFn(ctx)
}

func (m *mockTurnStore) MaxSeason(ctx context.Context) (sql.NullInt64, error) {
	if m.maxSeasonFn == nil {
		panic("maxSeasonFn not configured")
	}
	return m.maxSeasonFn(ctx)
}

func (m *mockTurnStore) MinActiveDay(ctx context.Context, season int64) (sql.NullInt64, error) {
	if m.minActiveDayFn == nil {
		panic("minActiveDayFn not configured")
	}
	return m.minActiveDayFn(ctx, season)
}

func (m *mockTurnStore) MaxDay(ctx context.Context, season int64) (sql.NullInt64, error) {
	if m.maxDayFn == nil {
		panic("maxDayFn not configured")
	}
	return m.maxDayFn(ctx, season)
}

func valid(v int64) sql.NullInt64 { return sql.NullInt64{Int64: v, Valid: true} }

func TestLatestActiveDay(t *testing.T) {
	t.Parallel()

	store := &mockTurnStore{
		maxSeasonFn: func(ctx context.Context) (sql.NullInt64, error) { return valid(4), nil },
		minActiveDayFn: func(ctx context.Context, season int64) (sql.NullInt64, error) {
			require.Equal(t, int64(4), season)
			return valid(9), nil
		},
	}

	latest, err := NewTurnRepository(store, zerolog.Nop()).Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Latest{Season: 4, Day: 9}, latest)
}

func TestLatestFallsBackToMaxDay(t *testing.T) {
	t.Parallel()

	store := &mockTurnStore{
		maxSeasonFn:    func(ctx context.Context) (sql.NullInt64, error) { return valid(2), nil },
		minActiveDayFn: func(ctx context.Context, season int64) (sql.NullInt64, error) { return sql.NullInt64{}, nil },
		maxDayFn: func(ctx context.Context, season int64) (sql.NullInt64, error) {
			require.Equal(t, int64(2), season)
			return valid(17), nil
		},
	}

	latest, err := NewTurnRepository(store, zerolog.Nop()).Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Latest{Season: 2, Day: 17}, latest)
}

func TestLatestMaxDayFailureDefaultsToZero(t *testing.T) {
	t.Parallel()

	store := &mockTurnStore{
		maxSeasonFn:    func(ctx context.Context) (sql.NullInt64, error) { return valid(3), nil },
		minActiveDayFn: func(ctx context.Context, season int64) (sql.NullInt64, error) { return sql.NullInt64{}, nil },
		maxDayFn: func(ctx context.Context, season int64) (sql.NullInt64, error) {
			return sql.NullInt64{}, errors.New("connection reset")
		},
	}

	latest, err := NewTurnRepository(store, zerolog.Nop()).Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Latest{Season: 3, Day: 0}, latest)
}

func TestLatestMaxDayNullDefaultsToZero(t *testing.T) {
	t.Parallel()

	store := &mockTurnStore{
		maxSeasonFn:    func(ctx context.Context) (sql.NullInt64, error) { return valid(5), nil },
		minActiveDayFn: func(ctx context.Context, season int64) (sql.NullInt64, error) { return sql.NullInt64{}, nil },
		maxDayFn:       func(ctx context.Context, season int64) (sql.NullInt64, error) { return sql.NullInt64{}, nil },
	}

	latest, err := NewTurnRepository(store, zerolog.Nop()).Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Latest{Season: 5, Day: 0}, latest)
}

func TestLatestNoSeason(t *testing.T) {
	t.Parallel()

	store := &mockTurnStore{
		maxSeasonFn: func(ctx context.Context) (sql.NullInt64, error) { return sql.NullInt64{}, nil },
	}

	latest, err := NewTurnRepository(store, zerolog.Nop()).Latest(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Latest{}, latest)
}

func TestLatestMaxSeasonFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("relation does not exist")
	store := &mockTurnStore{
		maxSeasonFn: func(ctx context.Context) (sql.NullInt64, error) { return sql.NullInt64{}, cause },
	}

	_, err := NewTurnRepository(store, zerolog.Nop()).Latest(context.Background())
	require.Error(t, err)
	require.True(t, domain.IsStoreError(err))
	require.ErrorIs(t, err, cause)
}

func TestLatestActiveDayFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("timeout")
	store := &mockTurnStore{
		maxSeasonFn:    func(ctx context.Context) (sql.NullInt64, error) { return valid(1), nil },
		minActiveDayFn: func(ctx context.Context, season int64) (sql.NullInt64, error) { return sql.NullInt64{}, cause },
	}

	_, err := NewTurnRepository(store, zerolog.Nop()).Latest(context.Background())
	require.Error(t, err)

	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	require.Equal(t, "min active day", storeErr.Op)
	require.ErrorIs(t, err, cause)
}

func TestLoadTurnsStoreFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk I/O error")
	store := &mockTurnStore{
		listRelevantFn: func(ctx context.Context) ([]db.TurnInfo, error) { return nil, cause },
		listAllFn:      func(ctx context.Context) ([]db.TurnInfo, error) { return nil, cause },
	}
	repo := NewTurnRepository(store, zerolog.Nop())

	turns, err := repo.LoadRelevant(context.Background())
	require.Nil(t, turns)
	require.True(t, domain.IsStoreError(err))

	turns, err = repo.LoadAll(context.Background())
	require.Nil(t, turns)
	require.True(t, domain.IsStoreError(err))
}

func TestLatestAgainstSQLite(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		turns []seed.Turn
		want  domain.Latest
	}{
		{
			name: "empty table",
			want: domain.Latest{},
		},
		{
			name: "newest season without active day uses its last day",
			turns: []seed.Turn{
				dbtest.Turn(1, 5, true, false),
				dbtest.Turn(1, 6, false, true),
				dbtest.Turn(2, 1, false, false),
			},
			want: domain.Latest{Season: 2, Day: 1},
		},
		{
			name: "single active day",
			turns: []seed.Turn{
				dbtest.Turn(3, 2, false, true),
			},
			want: domain.Latest{Season: 3, Day: 2},
		},
		{
			name: "earliest active incomplete day wins",
			turns: []seed.Turn{
				dbtest.Turn(4, 1, true, false),
				dbtest.Turn(4, 3, false, true),
				dbtest.Turn(4, 2, false, true),
				dbtest.Turn(4, 4, false, false),
			},
			want: domain.Latest{Season: 4, Day: 2},
		},
		{
			name: "finished season reports its highest day",
			turns: []seed.Turn{
				dbtest.Turn(6, 1, true, false),
				dbtest.Turn(6, 40, true, false),
				dbtest.Turn(6, 12, true, false),
			},
			want: domain.Latest{Season: 6, Day: 40},
		},
		{
			name: "rows without a season are ignored",
			turns: []seed.Turn{
				{Day: dbtest.Ptr(3)},
				dbtest.Turn(1, 1, false, true),
			},
			want: domain.Latest{Season: 1, Day: 1},
		},
		{
			name: "only null seasons",
			turns: []seed.Turn{
				{Day: dbtest.Ptr(3), Active: dbtest.Ptr(true)},
			},
			want: domain.Latest{},
		},
		{
			name: "season with no days",
			turns: []seed.Turn{
				{Season: dbtest.Ptr(8)},
			},
			want: domain.Latest{Season: 8, Day: 0},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sqlDB, queries := dbtest.Open(t)
			dbtest.Seed(t, sqlDB, queries, &seed.Fixture{Turns: tc.turns})

			latest, err := NewTurnRepository(queries, zerolog.Nop()).Latest(context.Background())
			require.NoError(t, err)
			require.Equal(t, tc.want, latest)
		})
	}
}

func TestLoadRelevantSkipsIdleTurns(t *testing.T) {
	t.Parallel()

	sqlDB, queries := dbtest.Open(t)
	dbtest.Seed(t, sqlDB, queries, &seed.Fixture{Turns: []seed.Turn{
		dbtest.Turn(1, 1, true, false),
		dbtest.Turn(1, 2, false, true),
		dbtest.Turn(1, 3, false, false),
		dbtest.Turn(1, 4, true, true),
		{Season: dbtest.Ptr(1), Day: dbtest.Ptr(5)},
		{Season: dbtest.Ptr(1), Day: dbtest.Ptr(6), Active: dbtest.Ptr(true)},
	}})

	turns, err := NewTurnRepository(queries, zerolog.Nop()).LoadRelevant(context.Background())
	require.NoError(t, err)

	days := make([]int, 0, len(turns))
	for _, turn := range turns {
		complete := turn.Complete != nil && *turn.Complete
		active := turn.Active != nil && *turn.Active
		require.True(t, complete || active, "turn %d is neither complete nor active", turn.ID)
		days = append(days, *turn.Day)
	}
	require.ElementsMatch(t, []int{1, 2, 4, 6}, days)
}

func TestLoadAllOrderedByID(t *testing.T) {
	t.Parallel()

	rollTime := time.Date(2020, 4, 1, 4, 0, 0, 0, time.UTC)
	first := dbtest.Turn(2, 9, true, false)
	first.RollStartTime = &rollTime

	sqlDB, queries := dbtest.Open(t)
	dbtest.Seed(t, sqlDB, queries, &seed.Fixture{Turns: []seed.Turn{
		first,
		dbtest.Turn(1, 1, false, false),
		{},
		dbtest.Turn(3, 1, false, true),
	}})

	turns, err := NewTurnRepository(queries, zerolog.Nop()).LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, turns, 4)

	for i := 1; i < len(turns); i++ {
		require.Less(t, turns[i-1].ID, turns[i].ID)
	}

	require.Equal(t, 2, *turns[0].Season)
	require.NotNil(t, turns[0].RollStartTime)
	require.True(t, rollTime.Equal(*turns[0].RollStartTime))

	blank := turns[2]
	require.Nil(t, blank.Season)
	require.Nil(t, blank.Day)
	require.Nil(t, blank.Complete)
	require.Nil(t, blank.Active)
	require.Nil(t, blank.Finale)
	require.Nil(t, blank.RollStartTime)
}
