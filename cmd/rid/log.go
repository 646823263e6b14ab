package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nextonesfaster/retrvid/internal/config"
)

// EnvLogLevel sets the log level when --verbose is not given.
const EnvLogLevel = "RETRVID_LOG"

// logLevel picks the level from --verbose, RETRVID_LOG, then the global config.
func logLevel(verbose bool) string {
	if verbose {
		return "debug"
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		return lvl
	}
	return config.GetLogLevel()
}

// initLogger points the global zerolog logger at w. Unknown or empty levels
// fall back to warn so normal runs stay quiet.
func initLogger(lvl string, w io.Writer) {
	level, err := zerolog.ParseLevel(lvl)
	if err != nil || lvl == "" {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
