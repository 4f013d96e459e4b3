package domain

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestArchiveTrigramKeepsNewestFirst(t *testing.T) {
	lex := newStubLexicon(40)
	rng := rand.New(rand.NewSource(1))
	r := &Round{
		Players:  []*Player{NewPlayer("alice")},
		Settings: DefaultSettings(),
		History:  []TrigramExample{},
	}

	r.advanceTrigram(lex, rng)
	first := r.CurrentTrigram
	r.Players[0].Guesses = append(r.Players[0].Guesses, Guess{Word: first + "ED", Round: 0})

	r.advanceTrigram(lex, rng)
	second := r.CurrentTrigram
	r.Number++
	r.advanceTrigram(lex, rng)

	if len(r.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(r.History))
	}
	if r.History[0].Trigram != second || r.History[1].Trigram != first {
		t.Fatalf("history order = [%s %s], want newest first", r.History[0].Trigram, r.History[1].Trigram)
	}
	if !reflect.DeepEqual(r.History[1].Guesses, []string{first + "ED"}) {
		t.Fatalf("archived guesses = %v", r.History[1].Guesses)
	}
	if !reflect.DeepEqual(r.History[1].Examples, []string{first + "OLOGICALLY"}) {
		t.Fatalf("archived examples = %v", r.History[1].Examples)
	}
}

func TestAdvanceTrigramPanicsOnEmptyPool(t *testing.T) {
	lex := newStubLexicon(1)
	rng := rand.New(rand.NewSource(1))
	r := &Round{
		Players:  []*Player{NewPlayer("alice")},
		Settings: DefaultSettings(),
		History:  []TrigramExample{},
	}
	r.advanceTrigram(lex, rng)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on an exhausted trigram pool")
		}
	}()
	r.advanceTrigram(lex, rng)
}
