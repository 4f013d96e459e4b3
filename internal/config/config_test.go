package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Game.MinTrigramWords != 200 {
		t.Errorf("MinTrigramWords = %d, want 200", cfg.Game.MinTrigramWords)
	}
	if cfg.Game.CountdownSeconds != 5 {
		t.Errorf("CountdownSeconds = %d, want 5", cfg.Game.CountdownSeconds)
	}
	if cfg.Game.DefaultTurnTimeout != 5*time.Second {
		t.Errorf("DefaultTurnTimeout = %v, want 5s", cfg.Game.DefaultTurnTimeout)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORE_DSN", "/tmp/matches.db")
	t.Setenv("WORD_LIST_FILE", "/usr/share/dict/words")
	t.Setenv("TURN_TIMEOUT_SECONDS", "9")
	t.Setenv("DEMO_PLAYERS", "5")
	t.Setenv("DEMO_FAILURE_RATE", "0.5")
	t.Setenv("LOG_LEVEL", "not-a-number-either")

	cfg := Load()
	if cfg.Store.DSN != "/tmp/matches.db" {
		t.Errorf("DSN = %q", cfg.Store.DSN)
	}
	if cfg.Game.WordListFile != "/usr/share/dict/words" {
		t.Errorf("WordListFile = %q", cfg.Game.WordListFile)
	}
	if cfg.Game.DefaultTurnTimeout != 9*time.Second {
		t.Errorf("DefaultTurnTimeout = %v", cfg.Game.DefaultTurnTimeout)
	}
	if cfg.Demo.Players != 5 || cfg.Demo.FailureRate != 0.5 {
		t.Errorf("Demo = %+v", cfg.Demo)
	}
	if cfg.Logging.Level != "not-a-number-either" {
		t.Errorf("Level = %q", cfg.Logging.Level)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("MIN_TRIGRAM_WORDS", "lots")
	t.Setenv("DEMO_FAILURE_RATE", "sometimes")

	cfg := Load()
	if cfg.Game.MinTrigramWords != 200 {
		t.Errorf("MinTrigramWords = %d, want default", cfg.Game.MinTrigramWords)
	}
	if cfg.Demo.FailureRate != 0.2 {
		t.Errorf("FailureRate = %v, want default", cfg.Demo.FailureRate)
	}
}
