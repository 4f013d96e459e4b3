package scheduler

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type recorder struct {
	rounds     chan roundFire
	countdowns chan string
}

type roundFire struct {
	matchID string
	round   int
}

func (r *recorder) OnRoundTimerFired(matchID string, round int) {
	r.rounds <- roundFire{matchID, round}
}

func (r *recorder) OnCountdownFired(matchID string) {
	r.countdowns <- matchID
}

func TestGocronFiresOneShotTimers(t *testing.T) {
	g, err := NewGocron(clockwork.NewRealClock(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewGocron: %v", err)
	}
	rec := &recorder{rounds: make(chan roundFire, 1), countdowns: make(chan string, 1)}
	g.Start(rec)
	defer g.Stop()

	g.ScheduleRoundTimer("m1", 4, 10*time.Millisecond)
	g.ScheduleCountdown("m2", 10*time.Millisecond)

	select {
	case got := <-rec.rounds:
		if got != (roundFire{"m1", 4}) {
			t.Fatalf("round fire = %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("round timer never fired")
	}
	select {
	case got := <-rec.countdowns:
		if got != "m2" {
			t.Fatalf("countdown fire = %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("countdown never fired")
	}
}
