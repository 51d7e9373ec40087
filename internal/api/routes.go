package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/infiniv/luqum/internal/cache"
	"github.com/infiniv/luqum/internal/config"
	"github.com/infiniv/luqum/internal/observability"
	"github.com/infiniv/luqum/internal/ratelimit"
	"github.com/infiniv/luqum/internal/schema"
	"github.com/infiniv/luqum/internal/translator"
	"github.com/infiniv/luqum/internal/validation"
)

// SetupRoutes sets up all HTTP routes
func SetupRoutes(cfg *config.Config, logger *observability.Logger, metrics *observability.Metrics, schemaRegistry *schema.Registry, translatorRegistry *translator.Registry, rateLimiter *ratelimit.RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Create handlers
	queryValidator := validation.NewValidator(&cfg.Security, &cfg.Limits)
	var parseCache *cache.ParseCache
	if cfg.Cache.Enabled {
		parseCache = cache.NewParseCache(cfg.Cache.MaxSize, time.Duration(cfg.Cache.TTL)*time.Second)
	}
	handlers := NewHandlers(cfg, logger, metrics)
	schemaHandler := NewHandler(schemaRegistry)
	translateHandler := NewTranslateHandler(schemaRegistry, translatorRegistry, queryValidator, parseCache)
	parseHandler := NewParseHandler(queryValidator, parseCache)

	// Global middleware
	r.Use(RequestIDMiddleware(cfg))
	r.Use(RateLimitMiddleware(rateLimiter, cfg))
	r.Use(LoggingMiddleware(logger))
	r.Use(RecoveryMiddleware(logger))
	r.Use(CORSMiddleware(cfg))
	r.Use(ValidationMiddleware(queryValidator, cfg))

	// Add metrics middleware if enabled
	if metrics != nil {
		r.Use(MetricsMiddleware(metrics))
	}

	// Health and readiness endpoints (no /api prefix)
	r.Get("/health", handlers.Health)
	r.Get("/ready", handlers.Ready)

	// Metrics endpoint (only if enabled)
	if cfg.Metrics.Enabled && metrics != nil {
		r.Handle(cfg.Metrics.Path, handlers.Metrics())
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Schema endpoints
		r.Post("/schemas", schemaHandler.RegisterSchema)
		r.Get("/schemas", schemaHandler.ListSchemas)
		r.Get("/schemas/{name}", schemaHandler.GetSchema)
		r.Delete("/schemas/{name}", schemaHandler.DeleteSchema)

		// Translation endpoint
		r.Post("/translate", translateHandler.ServeHTTP)

		// Parse / print endpoints
		r.Post("/parse", parseHandler.Parse)
		r.Post("/print", parseHandler.Print)
	})

	return r
}
