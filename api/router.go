// Package api assembles the HTTP surface: middleware chain, health probes and
// versioned routes.
package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ddd-order/api/health"
	"ddd-order/api/middleware"
	orderapi "ddd-order/api/order"
	"ddd-order/config"
)

// NewRouter builds the gin engine with the full middleware chain and all
// routes mounted under /api/v1.
func NewRouter(cfg *config.Config, logger *zap.Logger, orderCtl *orderapi.Controller, healthCtl *health.Controller) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logging(logger),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)
	if cfg.Server.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst))
	}

	healthCtl.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	orderCtl.RegisterRoutes(v1)

	return r
}
