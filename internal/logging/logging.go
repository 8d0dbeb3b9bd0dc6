package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	LevelKey   = "log.level"
	FormatKey  = "log.format"
	NoColorKey = "log.no_color"
)

// InitDefault sets up a console logger with sane defaults so that code
// running before flags/config are parsed can already log.
func InitDefault() {
	log.Logger = zerolog.New(consoleWriter(os.Stderr, false)).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
}

// Init configures the global logger from viper ("log.level", "log.format",
// "log.no_color"). If out is nil, stderr is used.
func Init(out io.Writer) {
	if out == nil {
		out = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString(LevelKey)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var w io.Writer = out
	if viper.GetString(FormatKey) != "json" {
		w = consoleWriter(out, viper.GetBool(NoColorKey))
	}

	log.Logger = zerolog.New(w).
		Level(level).
		With().Timestamp().Logger()
}

func consoleWriter(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
}
