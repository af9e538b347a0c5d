package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// Configure installs the global zerolog logger. Console output goes to stderr so the
// table dump on stdout stays clean; json is used when running inside Lambda.
func Configure(debug, json bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	if json {
		w = os.Stdout
	}

	log.Logger = zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(level)
}
