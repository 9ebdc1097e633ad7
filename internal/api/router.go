package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockaigent/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultRequestTimeout = 15 * time.Second

// RouterConfig holds the HTTP-facing settings of NewRouter.
type RouterConfig struct {
	AllowOrigins   []string
	RequestTimeout time.Duration
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, CORS, RateLimiter).
//   - Adds a per-request timeout (15 seconds unless configured).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures the dashboard routes under /api.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.CORS(cfg.AllowOrigins),
		middleware.RateLimiter(),
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API ──────────────────────────────────────
	api := router.Group("/api")
	{
		api.GET("/brief", handler.GetBrief)
		api.GET("/signals", handler.GetSignals)
		api.GET("/stocks/:ticker", handler.GetStock)
		api.GET("/portfolio/summary", handler.GetPortfolioSummary)
		api.POST("/alerts", handler.CreateAlert)
		api.GET("/reports/weekly", handler.GetWeeklyReport)
		api.GET("/sources", handler.GetSources)
	}

	return router
}
