package service

import (
	"context"
	"errors"
	"risk-tracker/internal/config"
	"risk-tracker/internal/domain"
	"risk-tracker/internal/repository"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type TurnService struct {
	turns     *repository.TurnRepository
	rolls     *repository.RollRepository
	pastTurns *repository.PastTurnRepository
	timeout   time.Duration
	logger    zerolog.Logger
}

func NewTurnService(
	turns *repository.TurnRepository,
	rolls *repository.RollRepository,
	pastTurns *repository.PastTurnRepository,
	cfg *config.Config,
	logger zerolog.Logger,
) *TurnService {
	return &TurnService{
		turns:     turns,
		rolls:     rolls,
		pastTurns: pastTurns,
		timeout:   cfg.QueryTimeout,
		logger:    logger,
	}
}

// Overview bundles what a client needs to render the current day.
type Overview struct {
	Latest domain.Latest
	Turns  []domain.TurnInfo
	// Roll is nil until the current day has been rolled.
	Roll *domain.Roll
}

func (s *TurnService) Latest(ctx context.Context) (domain.Latest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.turns.Latest(ctx)
}

func (s *TurnService) Turns(ctx context.Context, all bool) ([]domain.TurnInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if all {
		return s.turns.LoadAll(ctx)
	}
	return s.turns.LoadRelevant(ctx)
}

// Roll loads the roll for at, or for the latest pointer when at is nil. The
// coordinate actually used is returned alongside the roll.
func (s *TurnService) Roll(ctx context.Context, at *domain.Latest) (domain.Latest, domain.Roll, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var target domain.Latest
	if at != nil {
		target = *at
	} else {
		latest, err := s.turns.Latest(ctx)
		if err != nil {
			return domain.Latest{}, domain.Roll{}, err
		}
		target = latest
	}

	s.logger.Debug().Int("season", target.Season).Int("day", target.Day).Msg("loading roll")

	roll, err := s.rolls.Load(ctx, target.Season, target.Day)
	if err != nil {
		return target, domain.Roll{}, err
	}
	return target, roll, nil
}

func (s *TurnService) PlayerTurns(ctx context.Context, userID int) ([]domain.PastTurn, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.pastTurns.ListByUser(ctx, userID)
}

// Overview resolves the latest pointer, then loads relevant turns and the
// roll for that pointer concurrently. A missing roll is not an error.
func (s *TurnService) Overview(ctx context.Context) (*Overview, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	latest, err := s.turns.Latest(ctx)
	if err != nil {
		return nil, err
	}

	overview := &Overview{Latest: latest}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		turns, err := s.turns.LoadRelevant(gCtx)
		if err != nil {
			return err
		}
		overview.Turns = turns
		return nil
	})

	g.Go(func() error {
		roll, err := s.rolls.Load(gCtx, latest.Season, latest.Day)
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug().
				Int("season", latest.Season).
				Int("day", latest.Day).
				Msg("no roll yet for latest turn")
			return nil
		}
		if err != nil {
			return err
		}
		overview.Roll = &roll
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}
