package logger

import (
	"io"
	"os"
	"storeflight/config"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(output(os.Stdout, false))
	log.Trace().Msg("Zerolog initialized.")
}

// Configure switches to structured JSON output in production and applies the configured level.
func Configure(cfg *config.Config) {
	log.Logger = log.Output(output(os.Stdout, cfg.IsProduction())).With().Str("app", cfg.App.Name).Logger()

	SetLogLevel(cfg)
}

func output(out io.Writer, structured bool) io.Writer {
	if structured {
		return out
	}

	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == "" {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
