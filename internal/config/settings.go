package config

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/tomz197/dodge/internal/game"
)

// Defaults shared by the commands.
const (
	DefaultHighScoreFile = "highscore.json"
	DefaultLogLevel      = "info"
)

// Settings are the environment-driven options common to every frontend.
type Settings struct {
	Debug         bool      // DODGE_DEBUG: draw the debug overlay
	HighScoreFile string    // DODGE_HIGHSCORE_FILE: shared high score file
	Seed          int64     // DODGE_SEED: fixed random seed, 0 for a fresh one per game
	LogLevel      log.Level // DODGE_LOG_LEVEL: debug, info, warn, error
}

// LoadSettings reads Settings from the environment.
func LoadSettings() Settings {
	level, err := log.ParseLevel(GetEnv("DODGE_LOG_LEVEL", DefaultLogLevel))
	if err != nil {
		level = log.InfoLevel
	}
	return Settings{
		Debug:         GetEnvBool("DODGE_DEBUG", false),
		HighScoreFile: GetEnv("DODGE_HIGHSCORE_FILE", DefaultHighScoreFile),
		Seed:          GetEnvInt64("DODGE_SEED", 0),
		LogLevel:      level,
	}
}

// GameConfig returns the default game tuning with the settings applied.
func (s Settings) GameConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.Debug = s.Debug
	return cfg
}

// Rand returns a deterministic source when a seed is set, or nil to let each
// game seed its own.
func (s Settings) Rand() game.Random {
	if s.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(uint64(s.Seed), uint64(s.Seed)>>32))
}

// NewLogger builds the structured logger a command passes down.
func (s Settings) NewLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           s.LogLevel,
	})
}
