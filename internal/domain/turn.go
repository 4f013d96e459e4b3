package domain

// TurnState is a tagged variant over the two turn policies. The sequential
// fields are meaningful only when Mode is TurnSequential; the simultaneous
// policy carries no extra state.
type TurnState struct {
	Mode        TurnMode `json:"mode"`
	ActiveIndex int      `json:"activeIndex,omitempty"`
	Exhausted   []string `json:"exhausted,omitempty"` // player ids that timed out under the live trigram
}

// NewTurnState builds the turn cursor for a fresh round state
func NewTurnState(mode TurnMode) TurnState {
	ts := TurnState{Mode: mode}
	if mode == TurnSequential {
		ts.Exhausted = []string{}
	}
	return ts
}

// ActivePlayer returns the player whose guess is currently acceptable.
// Only meaningful for the sequential policy.
func (r *Round) ActivePlayer() *Player {
	return r.Players[r.Turn.ActiveIndex]
}

// MayGuess reports whether a guess from the player is acceptable right now
func (r *Round) MayGuess(p *Player) bool {
	switch r.Turn.Mode {
	case TurnSimultaneous:
		return r.InRotation(p)
	default:
		return r.ActivePlayer().ID == p.ID
	}
}

// MarkExhausted records that the player timed out under the live trigram
func (r *Round) MarkExhausted(id string) {
	for _, e := range r.Turn.Exhausted {
		if e == id {
			return
		}
	}
	r.Turn.Exhausted = append(r.Turn.Exhausted, id)
}

// ClearExhausted empties the failure set; called whenever the trigram moves on
func (r *Round) ClearExhausted() {
	r.Turn.Exhausted = []string{}
}

// AllInRotationExhausted reports whether every player still taking turns has
// failed the live trigram.
func (r *Round) AllInRotationExhausted() bool {
	for _, p := range r.Players {
		if !r.InRotation(p) {
			continue
		}
		found := false
		for _, e := range r.Turn.Exhausted {
			if e == p.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// AdvanceCursor moves the active index to the next player in rotation,
// wrapping around the roster.
func (r *Round) AdvanceCursor() {
	n := len(r.Players)
	idx := r.Turn.ActiveIndex
	for i := 1; i <= n; i++ {
		next := (idx + i) % n
		if r.InRotation(r.Players[next]) {
			r.Turn.ActiveIndex = next
			return
		}
	}
}
