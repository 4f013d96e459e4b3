package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"trigrams/internal/app"
	"trigrams/internal/config"
	"trigrams/internal/domain"
	"trigrams/internal/lexicon"
	"trigrams/internal/scheduler"
	"trigrams/internal/store"
)

// exhibitionDeadline bounds a demo run so a misconfigured dictionary cannot
// hang the process.
const exhibitionDeadline = 3 * time.Minute

func main() {
	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg := config.Load()

	logger := newLogger(cfg.Logging)

	if cfg.Game.WordListFile == "" {
		logger.Fatal().Msg("WORD_LIST_FILE is required")
	}
	words, err := lexicon.LoadFile(cfg.Game.WordListFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load word list")
	}
	lex := lexicon.NewIndex(words, cfg.Game.MinTrigramWords)
	logger.Info().
		Int("words", lex.WordCount()).
		Int("trigrams", lex.TrigramCount()).
		Msg("lexicon ready")

	var st store.Store
	if cfg.Store.DSN != "" {
		sq, err := store.OpenSQLite(cfg.Store.DSN, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open store")
		}
		defer sq.Close()
		st = sq
	} else {
		st = store.NewMemory()
		logger.Info().Msg("using in-memory store")
	}

	seed := cfg.Demo.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info().Int64("seed", seed).Msg("rng seeded")

	clock := clockwork.NewRealClock()
	sched, err := scheduler.NewGocron(clock, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build scheduler")
	}

	svc := app.NewService(app.Options{
		Store:            st,
		Scheduler:        sched,
		Lexicon:          lex,
		Clock:            clock,
		RNG:              rand.New(rand.NewSource(seed)),
		Logger:           logger,
		CountdownSeconds: cfg.Game.CountdownSeconds,
	})
	sched.Start(svc)
	defer sched.Stop()

	if err := runExhibition(svc, lex, cfg, rand.New(rand.NewSource(seed+1)), logger); err != nil {
		logger.Error().Err(err).Msg("exhibition match failed")
		os.Exit(1)
	}
}

// runExhibition plays one bot-driven match end to end: create, register,
// start, then act for whichever bot holds the turn until an outcome lands.
func runExhibition(svc *app.Service, lex *lexicon.Index, cfg *config.Config, rng *rand.Rand, logger zerolog.Logger) error {
	ctx := context.Background()

	id, err := svc.CreateMatch(ctx, "exhibition")
	if err != nil {
		return err
	}
	bots := make([]string, cfg.Demo.Players)
	for i := range bots {
		bots[i] = "bot-" + string(rune('a'+i))
		if err := svc.AddPlayer(ctx, id, bots[i]); err != nil {
			return err
		}
	}
	timeout := cfg.Game.DefaultTurnTimeout
	if err := svc.UpdateSettings(ctx, id, domain.SettingsPatch{TurnTimeout: &timeout}); err != nil {
		return err
	}
	if err := svc.StartMatch(ctx, id); err != nil {
		return err
	}

	deadline := time.Now().Add(exhibitionDeadline)
	lastRound := -1
	failThisRound := false

	for time.Now().Before(deadline) {
		m, err := svc.GetMatch(ctx, id)
		if err != nil {
			return err
		}
		if m.State.Phase != domain.PhasePlaying {
			time.Sleep(200 * time.Millisecond)
			continue
		}
		r := m.State.Playing
		if r.Outcome.Decided() {
			logger.Info().
				Str("outcome", string(r.Outcome.Kind)).
				Str("winner", r.Outcome.WinnerID).
				Interface("wins", m.Wins).
				Msg("exhibition finished")
			return nil
		}

		if r.Number != lastRound {
			lastRound = r.Number
			failThisRound = rng.Float64() < cfg.Demo.FailureRate
			logger.Info().
				Int("round", r.Number).
				Str("trigram", r.CurrentTrigram).
				Str("active", r.ActivePlayer().ID).
				Msg("new round")
		}

		// On a fail round the bot goes silent and lets the timer fire.
		if !failThisRound {
			actor := r.ActivePlayer()
			if word, ok := pickWord(lex, r, rng); ok {
				if err := svc.SubmitWord(ctx, id, actor.ID, word); err != nil {
					return err
				}
			}
		}
		time.Sleep(150 * time.Millisecond)
	}
	return errors.New("exhibition match did not finish before deadline")
}

// pickWord chooses a random unused dictionary word for the live trigram
func pickWord(lex *lexicon.Index, r *domain.Round, rng *rand.Rand) (string, bool) {
	words := lex.WordsFor(r.CurrentTrigram)
	used := make(map[string]bool)
	for _, w := range r.UsedWords() {
		used[w] = true
	}
	rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	for _, w := range words {
		if !used[w] {
			return w, true
		}
	}
	return "", false
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var w = zerolog.ConsoleWriter{Out: os.Stdout}
	if cfg.Format == "json" {
		return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
