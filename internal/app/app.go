package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockaigent/config"
	"github.com/guttosm/stockaigent/internal/api"
	"github.com/guttosm/stockaigent/internal/middleware"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Loads the market universe and builds the upstream → cache → service pipeline.
//   - Creates the HTTP handler layer and the Gin router.
//   - Registers health and readiness probes (ready once a snapshot exists).
//   - Starts the initial snapshot build in the background.
//   - Starts the cron warmer when WARM_SCHEDULE is set.
//   - Provides a cleanup function that stops the warmer.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	svc, cache, err := buildService(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize market data: %w", err)
	}

	middleware.SetRateLimit(cfg.Server.RateLimitPerMinute, time.Minute)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc)

	// Setup Gin router with routes
	router := api.NewRouter(handler, api.RouterConfig{
		AllowOrigins:   cfg.Server.AllowOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(cache.Ready)
	healthHandler.Register(router)

	var warmer *Warmer
	if cfg.Cache.WarmSchedule != "" {
		warmer, err = NewWarmer(cache, cfg.Cache.WarmSchedule)
		if err != nil {
			return nil, nil, err
		}
		warmer.Start()
	}

	go warmOnStartup(cache)

	// Cleanup resources on shutdown
	cleanup := func() {
		if warmer != nil {
			warmer.Stop()
		}
	}

	return router, cleanup, nil
}
