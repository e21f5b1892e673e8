// Package logger provides a global logger for the application
package logger

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	debug = flag.Bool("debug", false, "sets log level to debug")
	trace = flag.Bool("trace", false, "sets log level to trace")
	info  = flag.Bool("info", false, "sets log level to info (default)")
)

func initLogger() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	// a missing .env is fine, the process environment is used as is
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("Error loading .env file!")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	logLevel := LevelFor(os.Getenv("ENVIRONMENT"))

	if *debug {
		logLevel = zerolog.DebugLevel
		log.Info().Msg("Debug flag detected - overriding environment log level")
	} else if *trace {
		logLevel = zerolog.TraceLevel
		log.Info().Msg("Trace flag detected - overriding environment log level")
	} else if *info {
		logLevel = zerolog.InfoLevel
		log.Info().Msg("Info flag detected - overriding environment log level")
	}

	// Apply the log level globally
	zerolog.SetGlobalLevel(logLevel)

	log.WithLevel(logLevel).Str("level", logLevel.String()).Msg("Logging enabled")
}

// LevelFor maps an ENVIRONMENT value to the default log level.
// dev and test log everything, prod and unknown values log info and above.
func LevelFor(environment string) zerolog.Level {
	switch strings.ToLower(environment) {
	case "dev", "test":
		return zerolog.TraceLevel
	case "", "prod":
		return zerolog.InfoLevel
	default:
		log.Warn().Str("environment", environment).Msg("Unknown environment - defaulting to production log level (info and above)")
		return zerolog.InfoLevel
	}
}

// Init initializes the logger with the configuration from the environment
// and command line flags.
// It sets up the global logger to use zerolog with console output.
// Example usage:
//
//	logger.Init() <- inside whichever main() function in your entrypoint
//
// Then, `go run ./cmd/server --debug`
func Init() {
	initLogger()
}
