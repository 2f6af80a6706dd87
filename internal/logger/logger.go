package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger for development and a JSON logger otherwise.
func New(env string) zerolog.Logger {
	level := zerolog.InfoLevel
	var base zerolog.Logger
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "development", "dev", "local":
		level = zerolog.DebugLevel
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	default:
		base = zerolog.New(os.Stdout)
	}
	return base.Level(level).With().Timestamp().Str("service", "careops").Logger()
}
