// Package app assembles the HTTP server from configuration. Both the
// standalone server and the serverless entrypoint build through it.
package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arnavshah/lecturebot-api-go/pkg/auth"
	"github.com/arnavshah/lecturebot-api-go/pkg/catalog"
	"github.com/arnavshah/lecturebot-api-go/pkg/config"
	"github.com/arnavshah/lecturebot-api-go/pkg/database"
	"github.com/arnavshah/lecturebot-api-go/pkg/handlers"
	"github.com/arnavshah/lecturebot-api-go/pkg/metrics"
	"github.com/arnavshah/lecturebot-api-go/pkg/scheduler"
)

// New compiles the timetable, opens storage and returns the routed engine.
// A timetable that fails to compile is returned as an error before any
// route is registered.
func New(cfg *config.Config, log zerolog.Logger) (*gin.Engine, error) {
	doc, err := catalog.Load(cfg.TimetablePath)
	if err != nil {
		return nil, err
	}
	s, err := scheduler.NewScheduler(doc)
	if err != nil {
		return nil, fmt.Errorf("timetable does not compile: %w", err)
	}
	log.Info().
		Str("timetable", sourceName(cfg.TimetablePath)).
		Int("occurrences", len(s.Occurrences)).
		Msg("timetable compiled")

	db, err := database.Open(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		return nil, err
	}

	a := auth.New(cfg.JWTSecret, cfg.APIMasterSecret)
	if err := auth.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword, log); err != nil {
		return nil, fmt.Errorf("failed to seed admin user: %w", err)
	}

	m := metrics.New()
	m.SetOccurrences(len(s.Occurrences))

	if cfg.Release() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	return handlers.NewRouter(&handlers.Handler{
		DB:        db,
		Auth:      a,
		Scheduler: s,
		Metrics:   m,
		Log:       log,
		Tick:      cfg.CountdownTick,
	}), nil
}

func sourceName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
