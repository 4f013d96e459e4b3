package domain

import "math/rand"

// Lexicon answers word-legality and trigram-eligibility questions over a
// static dictionary index. Implementations are pure; randomized sampling
// draws from the supplied source only.
type Lexicon interface {
	// IsLegal reports whether word is a legal guess for trigram, excluding
	// already-used words. The error is one of ErrWordAlreadyUsed,
	// ErrTrigramNotFound or ErrWordNotInDictionary.
	IsLegal(word, trigram string, excluded []string) error

	// SampleExamples returns up to three words longer than ten letters that
	// contain the trigram.
	SampleExamples(trigram string, rng *rand.Rand) []string

	// EligibleTrigrams returns, in stable order, every sufficiently common
	// trigram not present in excluded.
	EligibleTrigrams(excluded []string) []string
}

// archiveTrigram retires the live trigram into the history, newest first,
// together with example words and the guesses accepted against it this round.
func (r *Round) archiveTrigram(lex Lexicon, rng *rand.Rand) {
	if r.CurrentTrigram == "" {
		return
	}
	entry := TrigramExample{
		Trigram:  r.CurrentTrigram,
		Examples: lex.SampleExamples(r.CurrentTrigram, rng),
		Guesses:  r.GuessesThisRound(),
	}
	r.History = append([]TrigramExample{entry}, r.History...)
}

// advanceTrigram archives the live trigram and picks the next one uniformly
// from the eligible pool. An empty pool violates the dictionary sizing
// assumption and is not a recoverable condition.
func (r *Round) advanceTrigram(lex Lexicon, rng *rand.Rand) {
	r.archiveTrigram(lex, rng)

	excluded := make([]string, 0, len(r.History)+1)
	for _, h := range r.History {
		excluded = append(excluded, h.Trigram)
	}
	if r.CurrentTrigram != "" {
		excluded = append(excluded, r.CurrentTrigram)
	}

	eligible := lex.EligibleTrigrams(excluded)
	if len(eligible) == 0 {
		panic("trigram pool exhausted: dictionary no longer satisfies sizing assumptions")
	}
	r.CurrentTrigram = eligible[rng.Intn(len(eligible))]
}
