package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/kbhandari/portfolio-api/internal/app"
	"github.com/kbhandari/portfolio-api/internal/handlers"
	"github.com/kbhandari/portfolio-api/internal/middleware"
	"github.com/kbhandari/portfolio-api/internal/monitoring"
)

// NewRouter builds the Gin engine, wires middleware and registers the
// contact-form routes.
func NewRouter(db *gorm.DB, cfg *app.Config, contact *handlers.ContactHandler, health *monitoring.HealthManager) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}
	if contact == nil {
		return nil, fmt.Errorf("contact handler must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())

	api := r.Group("/api")
	api.GET("/health", handlers.Health())
	api.POST("/submit-form", contact.Submit)
	api.GET("/verify-email", contact.Verify)

	registerHealthRoutes(api, cfg, health)

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint)
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
