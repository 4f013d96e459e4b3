package domain

// EventType identifies a per-player game event
type EventType string

const (
	EventMyTurn          EventType = "MY_TURN"
	EventTimeUp          EventType = "TIME_UP"
	EventCorrectGuess    EventType = "CORRECT_GUESS"
	EventInvalidGuess    EventType = "INVALID_GUESS"
	EventFreeLetterAward EventType = "FREE_LETTER_AWARD"
	EventLifeEarned      EventType = "LIFE_EARNED"
	EventIWin            EventType = "I_WIN"
	EventILose           EventType = "I_LOSE"
)

// Event is a single entry in a player's pending event feed. Pending events
// describe the outcome of the most recent state transition from that
// player's point of view and are replaced wholesale on the next transition.
type Event struct {
	Type   EventType `json:"type"`
	Word   string    `json:"word,omitempty"`   // rejected word, for INVALID_GUESS
	Reason string    `json:"reason,omitempty"` // rejection reason, for INVALID_GUESS
	Letter string    `json:"letter,omitempty"` // awarded letter, for FREE_LETTER_AWARD
}

// NewEvent creates a payload-free event
func NewEvent(t EventType) Event {
	return Event{Type: t}
}

// NewInvalidGuessEvent creates the event delivered to a player whose guess
// was rejected
func NewInvalidGuessEvent(word, reason string) Event {
	return Event{Type: EventInvalidGuess, Word: word, Reason: reason}
}

// NewFreeLetterEvent creates the event announcing a bonus letter award
func NewFreeLetterEvent(letter string) Event {
	return Event{Type: EventFreeLetterAward, Letter: letter}
}
