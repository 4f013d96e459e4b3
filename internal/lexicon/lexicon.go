// Package lexicon holds the static word index the game validates guesses
// against: a word set plus a trigram -> word-list map covering every
// three-letter window of every word. The index is built once at startup and
// answers only pure questions after that.
package lexicon

import (
	"math/rand"
	"sort"
	"strings"

	"trigrams/internal/domain"
)

const (
	// DefaultMinTrigramWords is the frequency floor below which a trigram is
	// never offered for selection.
	DefaultMinTrigramWords = 200

	// ExampleMinLength is the exclusive length floor for example words.
	ExampleMinLength = 10

	// MaxExamples caps how many example words are sampled per trigram.
	MaxExamples = 3
)

// Index is an immutable dictionary index
type Index struct {
	words           map[string]struct{}
	trigrams        map[string][]string
	minTrigramWords int
}

// NewIndex builds an index from a word list. Words are uppercased and
// deduplicated; anything shorter than three letters cannot carry a trigram
// and is dropped. minTrigramWords <= 0 falls back to the default floor.
func NewIndex(words []string, minTrigramWords int) *Index {
	if minTrigramWords <= 0 {
		minTrigramWords = DefaultMinTrigramWords
	}
	ix := &Index{
		words:           make(map[string]struct{}, len(words)),
		trigrams:        make(map[string][]string),
		minTrigramWords: minTrigramWords,
	}
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if len(w) < 3 {
			continue
		}
		if _, ok := ix.words[w]; ok {
			continue
		}
		ix.words[w] = struct{}{}
		for _, t := range windows(w) {
			ix.trigrams[t] = append(ix.trigrams[t], w)
		}
	}
	return ix
}

// windows returns the distinct three-letter windows of a word
func windows(word string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i+3 <= len(word); i++ {
		t := word[i : i+3]
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// IsLegal reports whether word is a legal guess for trigram given the words
// already used this match. Matching is case-insensitive via uppercase
// canonicalization.
func (ix *Index) IsLegal(word, trigram string, excluded []string) error {
	word = strings.ToUpper(word)
	for _, used := range excluded {
		if word == strings.ToUpper(used) {
			return domain.ErrWordAlreadyUsed
		}
	}
	candidates, ok := ix.trigrams[strings.ToUpper(trigram)]
	if !ok {
		return domain.ErrTrigramNotFound
	}
	for _, c := range candidates {
		if c == word {
			return nil
		}
	}
	return domain.ErrWordNotInDictionary
}

// SampleExamples returns up to three words longer than ten letters
// containing the trigram, chosen by an unbiased shuffle.
func (ix *Index) SampleExamples(trigram string, rng *rand.Rand) []string {
	var long []string
	for _, w := range ix.trigrams[strings.ToUpper(trigram)] {
		if len(w) > ExampleMinLength {
			long = append(long, w)
		}
	}
	if len(long) == 0 {
		return nil
	}
	rng.Shuffle(len(long), func(i, j int) {
		long[i], long[j] = long[j], long[i]
	})
	if len(long) > MaxExamples {
		long = long[:MaxExamples]
	}
	return long
}

// EligibleTrigrams returns every trigram indexed with more words than the
// frequency floor and not in excluded. The result is sorted so a seeded RNG
// replays the same selection.
func (ix *Index) EligibleTrigrams(excluded []string) []string {
	skip := make(map[string]bool, len(excluded))
	for _, t := range excluded {
		skip[strings.ToUpper(t)] = true
	}
	var out []string
	for t, words := range ix.trigrams {
		if len(words) > ix.minTrigramWords && !skip[t] {
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}

// WordsFor returns a copy of the words indexed under a trigram
func (ix *Index) WordsFor(trigram string) []string {
	src := ix.trigrams[strings.ToUpper(trigram)]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// WordCount reports the number of indexed words
func (ix *Index) WordCount() int {
	return len(ix.words)
}

// TrigramCount reports the number of indexed trigrams
func (ix *Index) TrigramCount() int {
	return len(ix.trigrams)
}
