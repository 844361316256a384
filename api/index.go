package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/lecturebot-api-go/pkg/app"
	"github.com/arnavshah/lecturebot-api-go/pkg/config"
	"github.com/arnavshah/lecturebot-api-go/pkg/logging"
)

var (
	r       *gin.Engine
	initErr error
)

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadEnv(".env", "../.env")

	cfg, err := config.FromEnv()
	if err != nil {
		initErr = err
		return
	}
	// Serverless functions keep no local disk between invocations
	if cfg.DatabaseURL == "" {
		cfg.DataPath = "/tmp/" + config.DefaultDataPath
	}

	log := logging.New(logging.Config{Level: cfg.LogLevel, JSONFormat: true})
	r, initErr = app.New(cfg, log)
	if initErr != nil {
		log.Error().Err(initErr).Msg("initialization failed")
	}
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	if initErr != nil {
		http.Error(w, "service unavailable: "+initErr.Error(), http.StatusServiceUnavailable)
		return
	}
	r.ServeHTTP(w, req)
}
