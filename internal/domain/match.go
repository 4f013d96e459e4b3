package domain

import (
	"math/rand"
	"strings"
	"time"
)

// Match is the top-level persisted record. Every reducer below computes the
// full next value in memory; a reducer that returns an error leaves the
// record untouched so the enclosing transaction can be discarded.
type Match struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	State     GameState      `json:"state"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Wins      map[string]int `json:"wins"` // cumulative wins per player id, survives restarts
}

// NewMatch creates a match in the settings phase
func NewMatch(id, name string, now time.Time) *Match {
	settings := DefaultSettings()
	return &Match{
		ID:        id,
		Name:      name,
		State:     GameState{Phase: PhaseSettings, Settings: &settings},
		CreatedAt: now,
		UpdatedAt: now,
		Wins:      make(map[string]int),
	}
}

// TimerKind tags a timer request produced by a reducer
type TimerKind string

const (
	TimerRound     TimerKind = "ROUND"
	TimerCountdown TimerKind = "COUNTDOWN"
)

// TimerRequest asks the caller to arrange a future callback. Round carries
// the round fingerprint used to discard the callback if the state has moved on.
type TimerRequest struct {
	Kind  TimerKind
	Round int
	Delay time.Duration
}

func roundTimer(r *Round) TimerRequest {
	return TimerRequest{Kind: TimerRound, Round: r.Number, Delay: r.Settings.TurnTimeout}
}

// AddPlayer registers a player while the match is in settings
func (m *Match) AddPlayer(id string) error {
	if m.State.Phase != PhaseSettings {
		return ErrWrongPhase
	}
	s := m.State.Settings
	for _, p := range s.Players {
		if p.ID == id {
			return ErrPlayerAlreadyRegistered
		}
	}
	s.Players = append(s.Players, NewPlayer(id))
	return nil
}

// RemovePlayer drops a player from the roster while the match is in settings
func (m *Match) RemovePlayer(id string) error {
	if m.State.Phase != PhaseSettings {
		return ErrWrongPhase
	}
	s := m.State.Settings
	for i, p := range s.Players {
		if p.ID == id {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			return nil
		}
	}
	return ErrPlayerNotFound
}

// UpdateSettings applies a partial settings update while in settings
func (m *Match) UpdateSettings(patch SettingsPatch) error {
	if m.State.Phase != PhaseSettings {
		return ErrWrongPhase
	}
	s := m.State.Settings
	if patch.TurnTimeout != nil {
		if *patch.TurnTimeout <= 0 {
			return ErrInvalidTimeout
		}
		s.TurnTimeout = *patch.TurnTimeout
	}
	if patch.WinCondition != nil {
		s.WinCondition = *patch.WinCondition
	}
	if patch.TurnMode != nil {
		s.TurnMode = *patch.TurnMode
	}
	return nil
}

// Start moves the match from settings into the countdown phase
func (m *Match) Start(countdownSeconds int) ([]TimerRequest, error) {
	if m.State.Phase != PhaseSettings {
		return nil, ErrWrongPhase
	}
	s := m.State.Settings
	if len(s.Players) < 2 {
		return nil, ErrInsufficientPlayers
	}
	m.State = GameState{
		Phase:     PhaseCountdown,
		Countdown: &Countdown{Seconds: countdownSeconds, Settings: *s},
	}
	return []TimerRequest{{
		Kind:  TimerCountdown,
		Delay: time.Duration(countdownSeconds) * time.Second,
	}}, nil
}

// BeginPlaying is the countdown-fired transition: shuffle the roster, pick
// the first trigram and open round zero. A callback arriving in any other
// phase is stale.
func (m *Match) BeginPlaying(lex Lexicon, rng *rand.Rand) ([]TimerRequest, error) {
	if m.State.Phase != PhaseCountdown {
		return nil, ErrStaleTimer
	}
	cd := m.State.Countdown

	players := make([]*Player, len(cd.Settings.Players))
	copy(players, cd.Settings.Players)
	rng.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})

	snapshot := cd.Settings
	snapshot.Players = nil

	r := &Round{
		Players:  players,
		Turn:     NewTurnState(snapshot.TurnMode),
		Number:   0,
		Settings: snapshot,
		History:  []TrigramExample{},
		Outcome:  Outcome{Kind: OutcomeUndecided},
	}
	r.advanceTrigram(lex, rng)

	switch r.Turn.Mode {
	case TurnSimultaneous:
		for _, p := range r.Players {
			p.Emit(NewEvent(EventMyTurn))
		}
	default:
		r.ActivePlayer().Emit(NewEvent(EventMyTurn))
	}

	m.State = GameState{Phase: PhasePlaying, Playing: r}
	return []TimerRequest{roundTimer(r)}, nil
}

// SubmitWord applies a guess. An illegal word is a partial success: the
// reducer returns nil and the guesser receives an INVALID_GUESS event, with
// no turn advance. Guesses from ineligible players fail with ErrNotYourTurn
// before any state changes.
func (m *Match) SubmitWord(playerID, raw string, lex Lexicon, rng *rand.Rand) ([]TimerRequest, error) {
	if m.State.Phase != PhasePlaying {
		return nil, ErrWrongPhase
	}
	r := m.State.Playing
	if r.Outcome.Decided() {
		return nil, ErrGameOver
	}
	p, err := r.FindPlayer(playerID)
	if err != nil {
		return nil, err
	}
	if !r.MayGuess(p) {
		return nil, ErrNotYourTurn
	}

	r.ResetEvents()
	word := strings.ToUpper(strings.TrimSpace(raw))
	p.Word = ""

	if err := lex.IsLegal(word, r.CurrentTrigram, r.UsedWords()); err != nil {
		p.Emit(NewInvalidGuessEvent(word, err.Error()))
		return nil, nil
	}

	r.settleAcceptedGuess(p, word, rng)

	switch r.Turn.Mode {
	case TurnSimultaneous:
		// The round keeps running for everyone else; only a decided outcome
		// ends it early.
		if out := r.EvaluateOutcome(); out.Decided() {
			m.finish(r, out, lex, rng)
		}
		return nil, nil
	default:
		r.ClearExhausted()
		if out := r.EvaluateOutcome(); out.Decided() {
			m.finish(r, out, lex, rng)
			return nil, nil
		}
		r.advanceTrigram(lex, rng)
		r.AdvanceCursor()
		r.Number++
		r.ActivePlayer().Emit(NewEvent(EventMyTurn))
		return []TimerRequest{roundTimer(r)}, nil
	}
}

// TimeUp applies a fired round timer. The carried round number is the stale
// check: any mismatch with the live round is a no-op.
func (m *Match) TimeUp(round int, lex Lexicon, rng *rand.Rand) ([]TimerRequest, error) {
	if m.State.Phase != PhasePlaying {
		return nil, ErrStaleTimer
	}
	r := m.State.Playing
	if r.Outcome.Decided() || round != r.Number {
		return nil, ErrStaleTimer
	}

	r.ResetEvents()

	switch r.Turn.Mode {
	case TurnSimultaneous:
		for _, p := range r.Players {
			if !r.InRotation(p) || p.HasGuessIn(r.Number) {
				continue
			}
			p.Lives = max(p.Lives-1, 0)
			p.Word = ""
			p.Emit(NewEvent(EventTimeUp))
		}
		if out := r.EvaluateOutcome(); out.Decided() {
			m.finish(r, out, lex, rng)
			return nil, nil
		}
		r.advanceTrigram(lex, rng)
		r.Number++
		for _, p := range r.Players {
			if r.InRotation(p) {
				p.Emit(NewEvent(EventMyTurn))
			}
		}
		return []TimerRequest{roundTimer(r)}, nil
	default:
		p := r.ActivePlayer()
		p.Word = ""
		p.Lives = max(p.Lives-1, 0)
		p.DiscardGuesses(r.Number)
		p.Emit(NewEvent(EventTimeUp))
		r.MarkExhausted(p.ID)

		if out := r.EvaluateOutcome(); out.Decided() {
			m.finish(r, out, lex, rng)
			return nil, nil
		}
		// Rotate the trigram before the cursor moves when everyone still in
		// rotation has failed it.
		if r.AllInRotationExhausted() {
			r.advanceTrigram(lex, rng)
			r.ClearExhausted()
		}
		r.AdvanceCursor()
		r.Number++
		r.ActivePlayer().Emit(NewEvent(EventMyTurn))
		return []TimerRequest{roundTimer(r)}, nil
	}
}

// UpdateWord updates a player's in-progress word. Cosmetic: no round effect
// beyond clearing pending events.
func (m *Match) UpdateWord(playerID, text string) error {
	if m.State.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	r := m.State.Playing
	if r.Outcome.Decided() {
		return ErrGameOver
	}
	p, err := r.FindPlayer(playerID)
	if err != nil {
		return err
	}
	if r.Turn.Mode == TurnSequential && r.ActivePlayer().ID != playerID {
		return ErrNotYourTurn
	}
	r.ResetEvents()
	p.Word = text
	return nil
}

// Restart returns a decided match to the settings phase with fresh player
// records, preserving the roster order and cumulative wins.
func (m *Match) Restart() error {
	if m.State.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	r := m.State.Playing
	if !r.Outcome.Decided() {
		return ErrWrongPhase
	}
	settings := r.Settings
	players := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, NewPlayer(p.ID))
	}
	settings.Players = players
	m.State = GameState{Phase: PhaseSettings, Settings: &settings}
	return nil
}

// settleAcceptedGuess performs the shared post-acceptance bookkeeping:
// guess history, letter collection, long-word bonus and the LAST_STANDING
// full-alphabet life award.
func (r *Round) settleAcceptedGuess(p *Player, word string, rng *rand.Rand) {
	p.Guesses = append(p.Guesses, Guess{Word: word, Round: r.Number})
	p.RecordLetters(word)
	p.Emit(NewEvent(EventCorrectGuess))

	if len(word) > 10 {
		if unused := p.UnusedLetters(); len(unused) > 0 {
			letter := unused[rng.Intn(len(unused))]
			p.AddBonusLetter(letter)
			p.Emit(NewFreeLetterEvent(letter))
		}
	}

	if r.Settings.WinCondition == WinLastStanding && p.CoversAlphabet() {
		p.Lives++
		p.ClearLetters()
		p.Emit(NewEvent(EventLifeEarned))
	}
}

// finish seals the match: archive the final trigram, record the outcome and
// the cumulative win, and tell every player how it ended. No timer is armed.
func (m *Match) finish(r *Round, outcome Outcome, lex Lexicon, rng *rand.Rand) {
	r.archiveTrigram(lex, rng)
	r.CurrentTrigram = ""
	r.Outcome = outcome
	if outcome.Kind == OutcomeWinner {
		m.Wins[outcome.WinnerID]++
	}
	for _, p := range r.Players {
		if outcome.Kind == OutcomeWinner && p.ID == outcome.WinnerID {
			p.Emit(NewEvent(EventIWin))
		} else {
			p.Emit(NewEvent(EventILose))
		}
	}
}
