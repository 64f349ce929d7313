// Package handler is the Vercel serverless entry point. Vercel routes
// /api/optimize to Handler; vercel.json rewrites "/" onto the same function.
package handler

import (
	"net/http"
	"os"
	"sync"

	"github.com/eternisai/listing-optimizer/internal/config"
	apierrors "github.com/eternisai/listing-optimizer/internal/errors"
	"github.com/eternisai/listing-optimizer/internal/logger"
	"github.com/eternisai/listing-optimizer/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

var (
	once     sync.Once
	app      http.Handler
	setupErr error
)

func setup() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Read()
	if err != nil {
		setupErr = err
		return
	}

	appLogger := logger.New(logger.FromConfig(cfg.LogLevel, cfg.LogFormat))
	if cfg.GroqAPIKey == "" {
		appLogger.Warn("GROQ_API_KEY is not set, optimization requests will fail")
	}

	app = server.NewHTTPHandler(server.Options{
		Handler:     server.NewOptimizerHandler(cfg, appLogger, nil),
		Logger:      appLogger,
		CORSOrigins: cfg.CORSOrigins(),
	})
}

// Handler serves one invocation. Setup runs once per cold start.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)

	if setupErr != nil {
		writeSetupError(w, setupErr)
		return
	}

	app.ServeHTTP(w, r)
}

func writeSetupError(w http.ResponseWriter, err error) {
	log := logger.New(logger.FromConfig(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")))
	log.Error("configuration error", "error", err)

	body := render.JSON{Data: apierrors.NewAPIError(err.Error())}
	body.WriteContentType(w)
	w.WriteHeader(http.StatusInternalServerError)
	if renderErr := body.Render(w); renderErr != nil {
		log.Error("failed to write error response", "error", renderErr)
	}
}
