package domain

// Phase represents the top-level state of a match
type Phase string

const (
	PhaseSettings  Phase = "SETTINGS"  // roster and settings edits
	PhaseCountdown Phase = "COUNTDOWN" // start requested, waiting for kickoff
	PhasePlaying   Phase = "PLAYING"   // rounds in progress
)

// GameState is a tagged variant over the match phases. Exactly one payload
// pointer is non-nil, matching Phase.
type GameState struct {
	Phase     Phase      `json:"phase"`
	Settings  *Settings  `json:"settings,omitempty"`
	Countdown *Countdown `json:"countdown,omitempty"`
	Playing   *Round     `json:"playing,omitempty"`
}

// Countdown is the brief pre-game phase between start and the first round
type Countdown struct {
	Seconds  int      `json:"seconds"`
	Settings Settings `json:"settings"`
}

// OutcomeKind tags a round outcome
type OutcomeKind string

const (
	OutcomeUndecided OutcomeKind = "UNDECIDED"
	OutcomeWinner    OutcomeKind = "WINNER"
	OutcomeDraw      OutcomeKind = "DRAW"
)

// Outcome is the resolution of a match, Undecided while play continues
type Outcome struct {
	Kind     OutcomeKind `json:"kind"`
	WinnerID string      `json:"winnerId,omitempty"`
}

// Decided reports whether the match has ended
func (o Outcome) Decided() bool {
	return o.Kind != OutcomeUndecided
}

// TrigramExample archives a retired trigram: up to three long example words
// and every guess accepted against it.
type TrigramExample struct {
	Trigram  string   `json:"trigram"`
	Examples []string `json:"examples"`
	Guesses  []string `json:"guesses"`
}

// Round is the playing-phase state: the shuffled roster, the turn cursor,
// the live trigram and the archive of retired ones.
type Round struct {
	Players        []*Player        `json:"players"`
	Turn           TurnState        `json:"turn"`
	Number         int              `json:"number"`
	Settings       Settings         `json:"settings"` // snapshot, roster cleared
	CurrentTrigram string           `json:"currentTrigram"`
	History        []TrigramExample `json:"history"` // newest first
	Outcome        Outcome          `json:"outcome"`
}

// FindPlayer returns the round record for a player id
func (r *Round) FindPlayer(id string) (*Player, error) {
	for _, p := range r.Players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrPlayerNotFound
}

// InRotation reports whether a player still takes turns. Running out of
// lives removes a player from rotation only under LAST_STANDING; under
// USE_ALL_LETTERS everyone keeps playing until someone covers the alphabet.
func (r *Round) InRotation(p *Player) bool {
	if r.Settings.WinCondition != WinLastStanding {
		return true
	}
	return p.Lives > 0
}

// LivePlayerCount counts players with lives remaining
func (r *Round) LivePlayerCount() int {
	n := 0
	for _, p := range r.Players {
		if p.Lives > 0 {
			n++
		}
	}
	return n
}

// ResetEvents clears every player's pending feed; each state transition
// rebuilds the feeds from scratch.
func (r *Round) ResetEvents() {
	for _, p := range r.Players {
		p.Events = []Event{}
	}
}

// UsedWords returns every word accepted so far in this match
func (r *Round) UsedWords() []string {
	var out []string
	for _, p := range r.Players {
		for _, g := range p.Guesses {
			out = append(out, g.Word)
		}
	}
	return out
}

// GuessesThisRound returns the words accepted in the current round across
// all players, deduplicated, in roster-then-submission order.
func (r *Round) GuessesThisRound() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.Players {
		for _, g := range p.Guesses {
			if g.Round == r.Number && !seen[g.Word] {
				seen[g.Word] = true
				out = append(out, g.Word)
			}
		}
	}
	return out
}

// EvaluateOutcome applies the win condition to the current state
func (r *Round) EvaluateOutcome() Outcome {
	switch r.Settings.WinCondition {
	case WinUseAllLetters:
		for _, p := range r.Players {
			if p.CoversAlphabet() {
				return Outcome{Kind: OutcomeWinner, WinnerID: p.ID}
			}
		}
		return Outcome{Kind: OutcomeUndecided}
	default: // LAST_STANDING
		var last *Player
		alive := 0
		for _, p := range r.Players {
			if p.Lives > 0 {
				alive++
				last = p
			}
		}
		switch alive {
		case 0:
			return Outcome{Kind: OutcomeDraw}
		case 1:
			return Outcome{Kind: OutcomeWinner, WinnerID: last.ID}
		default:
			return Outcome{Kind: OutcomeUndecided}
		}
	}
}
