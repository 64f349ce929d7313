package server

import (
	"net/http"

	"github.com/eternisai/listing-optimizer/internal/config"
	apierrors "github.com/eternisai/listing-optimizer/internal/errors"
	"github.com/eternisai/listing-optimizer/internal/groq"
	"github.com/eternisai/listing-optimizer/internal/logger"
	"github.com/eternisai/listing-optimizer/internal/optimizer"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// OptimizePath is the route the optimizer is served on besides "/".
const OptimizePath = "/api/optimize"

// Options configures the HTTP surface.
type Options struct {
	Handler *optimizer.Handler
	Logger  *logger.Logger

	// Metrics serves /metrics when set.
	Metrics http.Handler

	// CORSOrigins lists allowed origins; "*" allows any.
	CORSOrigins []string
}

// NewOptimizerHandler wires the Groq client, service and handler from configuration.
// Without an API key the handler still serves health checks and answers
// optimization requests with the missing-credential error. A nil recorder
// disables metrics.
func NewOptimizerHandler(cfg *config.Config, log *logger.Logger, recorder optimizer.Recorder) *optimizer.Handler {
	var completer optimizer.Completer
	if cfg.GroqAPIKey != "" {
		completer = groq.NewClient(cfg)
	}

	service := optimizer.NewService(completer, cfg.Completion, cfg.Prompt, log, recorder)
	return optimizer.NewHandler(service, log, recorder)
}

// NewRouter builds the gin engine. Every response it produces, including
// 404, 405 and recovered panics, has a JSON body.
func NewRouter(opts Options) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(apierrors.Recovery(opts.Logger))
	router.Use(logger.RequestLoggingMiddleware(opts.Logger))

	router.NoRoute(apierrors.AbortWithNotFound)
	router.NoMethod(apierrors.AbortWithMethodNotAllowed)

	router.GET("/health", opts.Handler.Health)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	// The optimizer dispatches on method itself so unsupported methods get its 405 body.
	router.Any("/", opts.Handler.ServeGin)
	router.Any(OptimizePath, opts.Handler.ServeGin)

	return router
}

// NewHTTPHandler wraps the router with CORS handling.
func NewHTTPHandler(opts Options) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", logger.RequestIDHeader},
		ExposedHeaders: []string{logger.RequestIDHeader},
	})

	return c.Handler(NewRouter(opts))
}
