// Package app hosts the match service: the thin layer that turns caller
// operations and fired timers into serialized read-modify-write
// transactions against the store, and arms follow-up timers only after a
// transaction commits.
package app

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"trigrams/internal/domain"
	"trigrams/internal/scheduler"
	"trigrams/internal/store"
)

// DefaultCountdownSeconds is used when no countdown length is configured
const DefaultCountdownSeconds = 5

// Options bundles the collaborators a Service consumes
type Options struct {
	Store            store.Store
	Scheduler        scheduler.Scheduler
	Lexicon          domain.Lexicon
	Clock            clockwork.Clock
	RNG              *rand.Rand
	Logger           zerolog.Logger
	CountdownSeconds int
}

// Service exposes the match operations. A single mutex linearizes every
// operation and timer callback, which is the serialization guarantee the
// domain reducers rely on; the reducers themselves never lock.
type Service struct {
	store            store.Store
	sched            scheduler.Scheduler
	lex              domain.Lexicon
	clock            clockwork.Clock
	rng              *rand.Rand
	log              zerolog.Logger
	countdownSeconds int
	mu               sync.Mutex
}

// NewService creates a match service
func NewService(opts Options) *Service {
	if opts.CountdownSeconds <= 0 {
		opts.CountdownSeconds = DefaultCountdownSeconds
	}
	return &Service{
		store:            opts.Store,
		sched:            opts.Scheduler,
		lex:              opts.Lexicon,
		clock:            opts.Clock,
		rng:              opts.RNG,
		log:              opts.Logger,
		countdownSeconds: opts.CountdownSeconds,
	}
}

// transact runs one reducer inside a store transaction and arms any timers
// it requested once the write has committed.
func (s *Service) transact(ctx context.Context, matchID string, fn func(*domain.Match) ([]domain.TimerRequest, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var timers []domain.TimerRequest
	err := s.store.Update(ctx, matchID, func(m *domain.Match) error {
		t, err := fn(m)
		if err != nil {
			return err
		}
		m.UpdatedAt = s.clock.Now()
		timers = t
		return nil
	})
	if err != nil {
		return err
	}
	for _, t := range timers {
		switch t.Kind {
		case domain.TimerCountdown:
			s.sched.ScheduleCountdown(matchID, t.Delay)
		case domain.TimerRound:
			s.sched.ScheduleRoundTimer(matchID, t.Round, t.Delay)
		}
	}
	return nil
}

// CreateMatch creates a match in the settings phase and returns its id
func (s *Service) CreateMatch(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	m := domain.NewMatch(id, name, s.clock.Now())
	if err := s.store.Create(ctx, m); err != nil {
		return "", err
	}
	s.log.Info().Str("match", id).Str("name", name).Msg("match created")
	return id, nil
}

// DeleteMatch removes a match; only legal while it sits in settings
func (s *Service) DeleteMatch(ctx context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.store.Get(ctx, matchID)
	if err != nil {
		return err
	}
	if m.State.Phase != domain.PhaseSettings {
		return domain.ErrWrongPhase
	}
	if err := s.store.Delete(ctx, matchID); err != nil {
		return err
	}
	s.log.Info().Str("match", matchID).Msg("match deleted")
	return nil
}

// GetMatch returns the current match record
func (s *Service) GetMatch(ctx context.Context, matchID string) (*domain.Match, error) {
	return s.store.Get(ctx, matchID)
}

// ListMatches returns every stored match
func (s *Service) ListMatches(ctx context.Context) ([]*domain.Match, error) {
	return s.store.List(ctx)
}

// AddPlayer registers a player on a match in settings
func (s *Service) AddPlayer(ctx context.Context, matchID, playerID string) error {
	return s.transact(ctx, matchID, func(m *domain.Match) ([]domain.TimerRequest, error) {
		return nil, m.AddPlayer(playerID)
	})
}

// RemovePlayer drops a player from a match in settings
func (s *Service) RemovePlayer(ctx context.Context, matchID, playerID string) error {
	return s.transact(ctx, matchID, func(m *domain.Match) ([]domain.TimerRequest, error) {
		return nil, m.RemovePlayer(playerID)
	})
}

// UpdateSettings applies a partial settings update
func (s *Service) UpdateSettings(ctx context.Context, matchID string, patch domain.SettingsPatch) error {
	return s.transact(ctx, matchID, func(m *domain.Match) ([]domain.TimerRequest, error) {
		return nil, m.UpdateSettings(patch)
	})
}

// StartMatch begins the countdown for a match with enough players
func (s *Service) StartMatch(ctx context.Context, matchID string) error {
	err := s.transact(ctx, matchID, func(m *domain.Match) ([]domain.TimerRequest, error) {
		return m.Start(s.countdownSeconds)
	})
	if err == nil {
		s.log.Info().Str("match", matchID).Int("countdownSeconds", s.countdownSeconds).Msg("match starting")
	}
	return err
}

// SubmitWord applies a guess from a player
func (s *Service) SubmitWord(ctx context.Context, matchID, playerID, word string) error {
	return s.transact(ctx, matchID, func(m *domain.Match) ([]domain.TimerRequest, error) {
		return m.SubmitWord(playerID, word, s.lex, s.rng)
	})
}

// UpdateInProgressWord updates the word a player is typing
func (s *Service) UpdateInProgressWord(ctx context.Context, matchID, playerID, text string) error {
	return s.transact(ctx, matchID, func(m *domain.Match) ([]domain.TimerRequest, error) {
		return nil, m.UpdateWord(playerID, text)
	})
}

// RestartMatch returns a decided match to the settings phase
func (s *Service) RestartMatch(ctx context.Context, matchID string) error {
	return s.transact(ctx, matchID, func(m *domain.Match) ([]domain.TimerRequest, error) {
		return nil, m.Restart()
	})
}

// OnRoundTimerFired is the scheduler callback for a round timeout. A stale
// fingerprint, a finished match or a missing match are silent no-ops.
func (s *Service) OnRoundTimerFired(matchID string, round int) {
	ctx := context.Background()
	err := s.transact(ctx, matchID, func(m *domain.Match) ([]domain.TimerRequest, error) {
		return m.TimeUp(round, s.lex, s.rng)
	})
	switch {
	case err == nil:
		s.log.Debug().Str("match", matchID).Int("round", round).Msg("round timed out")
	case errors.Is(err, domain.ErrStaleTimer), errors.Is(err, domain.ErrMatchNotFound):
		s.log.Debug().Str("match", matchID).Int("round", round).Msg("stale round timer dropped")
	default:
		s.log.Warn().Err(err).Str("match", matchID).Int("round", round).Msg("round timer failed")
	}
}

// OnCountdownFired is the scheduler callback that opens round zero
func (s *Service) OnCountdownFired(matchID string) {
	ctx := context.Background()
	err := s.transact(ctx, matchID, func(m *domain.Match) ([]domain.TimerRequest, error) {
		return m.BeginPlaying(s.lex, s.rng)
	})
	switch {
	case err == nil:
		s.log.Info().Str("match", matchID).Msg("match playing")
	case errors.Is(err, domain.ErrStaleTimer), errors.Is(err, domain.ErrMatchNotFound):
		s.log.Debug().Str("match", matchID).Msg("stale countdown dropped")
	default:
		s.log.Warn().Err(err).Str("match", matchID).Msg("countdown failed")
	}
}
