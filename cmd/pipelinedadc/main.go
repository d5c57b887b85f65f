package main

import (
	"os"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stderr}
	log = zerolog.New(cw).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("pipelinedadc failed")
		os.Exit(1)
	}
}
