package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging settings.
type Config struct {
	Level  string `env:"LEVEL"  envDefault:"info"`
	Pretty bool   `env:"PRETTY" envDefault:"false"`
}

// NewLogger creates a zerolog logger tagged with the service name.
// An unknown level falls back to info.
func NewLogger(service string, cfg Config) *zerolog.Logger {
	return newLogger(os.Stdout, service, cfg)
}

func newLogger(w io.Writer, service string, cfg Config) *zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	return &logger
}
