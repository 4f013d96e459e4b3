package domain

import "sort"

// StartingLives is the number of lives a freshly registered player holds.
const StartingLives = 3

// Alphabet is the letter pool tracked for collection and bonus awards.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Guess is one accepted word together with the round it was accepted in
type Guess struct {
	Word  string `json:"word"`
	Round int    `json:"round"`
}

// Player is the per-player round record: lives, the word being typed,
// collected letters, accepted guesses and the pending event feed.
type Player struct {
	ID           string   `json:"id"`
	Word         string   `json:"word"` // in-progress word, cosmetic
	Lives        int      `json:"lives"`
	UsedLetters  []string `json:"usedLetters"`  // sorted, single uppercase letters
	BonusLetters []string `json:"bonusLetters"` // sorted, single uppercase letters
	Guesses      []Guess  `json:"guesses"`
	Events       []Event  `json:"events"`
}

// NewPlayer creates a fresh record for the given player id
func NewPlayer(id string) *Player {
	return &Player{
		ID:           id,
		Lives:        StartingLives,
		UsedLetters:  []string{},
		BonusLetters: []string{},
		Guesses:      []Guess{},
		Events:       []Event{},
	}
}

// Emit appends an event to the player's pending feed
func (p *Player) Emit(e Event) {
	p.Events = append(p.Events, e)
}

// RecordLetters adds every A-Z character of word to the used-letter set
func (p *Player) RecordLetters(word string) {
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			continue
		}
		p.UsedLetters = addLetter(p.UsedLetters, string(r))
	}
}

// AddBonusLetter adds a letter to the bonus set
func (p *Player) AddBonusLetter(letter string) {
	p.BonusLetters = addLetter(p.BonusLetters, letter)
}

// UnusedLetters returns the alphabet letters absent from both collected
// sets, in alphabetical order.
func (p *Player) UnusedLetters() []string {
	var out []string
	for _, r := range Alphabet {
		l := string(r)
		if !hasLetter(p.UsedLetters, l) && !hasLetter(p.BonusLetters, l) {
			out = append(out, l)
		}
	}
	return out
}

// CoversAlphabet reports whether used and bonus letters together cover all
// 26 letters.
func (p *Player) CoversAlphabet() bool {
	return len(p.UnusedLetters()) == 0
}

// ClearLetters empties both letter sets, starting a new collection epoch
func (p *Player) ClearLetters() {
	p.UsedLetters = []string{}
	p.BonusLetters = []string{}
}

// DiscardGuesses removes accepted guesses recorded for the given round
func (p *Player) DiscardGuesses(round int) {
	kept := p.Guesses[:0]
	for _, g := range p.Guesses {
		if g.Round != round {
			kept = append(kept, g)
		}
	}
	p.Guesses = kept
}

// HasGuessIn reports whether the player logged an accepted guess in the
// given round.
func (p *Player) HasGuessIn(round int) bool {
	for _, g := range p.Guesses {
		if g.Round == round {
			return true
		}
	}
	return false
}

// addLetter inserts a letter into a sorted set, ignoring duplicates
func addLetter(set []string, letter string) []string {
	i := sort.SearchStrings(set, letter)
	if i < len(set) && set[i] == letter {
		return set
	}
	set = append(set, "")
	copy(set[i+1:], set[i:])
	set[i] = letter
	return set
}

// hasLetter reports membership in a sorted letter set
func hasLetter(set []string, letter string) bool {
	i := sort.SearchStrings(set, letter)
	return i < len(set) && set[i] == letter
}
