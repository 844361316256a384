package main

import (
	"os"

	"github.com/arnavshah/lecturebot-api-go/pkg/app"
	"github.com/arnavshah/lecturebot-api-go/pkg/config"
	"github.com/arnavshah/lecturebot-api-go/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New(logging.Config{})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logging.New(logging.Config{
		Level:      cfg.LogLevel,
		JSONFormat: cfg.LogJSON,
		Output:     os.Stdout,
	})

	r, err := app.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("could not start server")
	}

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("could not run server")
	}
}
