// Package scheduler arranges the future callbacks that drive countdowns and
// round timeouts. It only ever fires; cancellation does not exist. A
// callback for a superseded round is discarded by the match service's
// fingerprint check, not by the scheduler.
package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Callbacks receives fired timers. The round number is the fingerprint the
// receiver compares against its live state.
type Callbacks interface {
	OnRoundTimerFired(matchID string, round int)
	OnCountdownFired(matchID string)
}

// Scheduler is the gateway the match service arms timers through
type Scheduler interface {
	ScheduleRoundTimer(matchID string, round int, delay time.Duration)
	ScheduleCountdown(matchID string, delay time.Duration)
}

// Gocron implements Scheduler with one-shot gocron jobs
type Gocron struct {
	sched gocron.Scheduler
	clock clockwork.Clock
	cb    Callbacks
	log   zerolog.Logger
}

// NewGocron builds the scheduler on the injected clock
func NewGocron(clock clockwork.Clock, log zerolog.Logger) (*Gocron, error) {
	sched, err := gocron.NewScheduler(gocron.WithClock(clock))
	if err != nil {
		return nil, err
	}
	return &Gocron{sched: sched, clock: clock, log: log}, nil
}

// Start wires the callback receiver and begins firing jobs
func (g *Gocron) Start(cb Callbacks) {
	g.cb = cb
	g.sched.Start()
}

// Stop shuts the scheduler down; pending jobs are dropped
func (g *Gocron) Stop() error {
	return g.sched.Shutdown()
}

func (g *Gocron) ScheduleRoundTimer(matchID string, round int, delay time.Duration) {
	fireAt := g.clock.Now().Add(delay)
	_, err := g.sched.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(fireAt)),
		gocron.NewTask(func() { g.cb.OnRoundTimerFired(matchID, round) }),
		gocron.WithName("round-timer"),
		gocron.WithTags(uuid.NewString()),
	)
	if err != nil {
		g.log.Warn().Err(err).Str("match", matchID).Int("round", round).Msg("failed to arm round timer")
		return
	}
	g.log.Debug().Str("match", matchID).Int("round", round).Time("fireAt", fireAt).Msg("round timer armed")
}

func (g *Gocron) ScheduleCountdown(matchID string, delay time.Duration) {
	fireAt := g.clock.Now().Add(delay)
	_, err := g.sched.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(fireAt)),
		gocron.NewTask(func() { g.cb.OnCountdownFired(matchID) }),
		gocron.WithName("countdown"),
		gocron.WithTags(uuid.NewString()),
	)
	if err != nil {
		g.log.Warn().Err(err).Str("match", matchID).Msg("failed to arm countdown")
		return
	}
	g.log.Debug().Str("match", matchID).Time("fireAt", fireAt).Msg("countdown armed")
}
