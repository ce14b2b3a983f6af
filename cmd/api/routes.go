package main

import (
	"database/sql"
	"net/http"
	"time"

	"centre-portal/internal/administrators"
	"centre-portal/internal/audit"
	"centre-portal/internal/auth"
	"centre-portal/internal/centres"
	"centre-portal/internal/config"
	"centre-portal/internal/httpapi"
	"centre-portal/internal/languages"
	"centre-portal/internal/operators"
	"centre-portal/internal/pricing"
	"centre-portal/internal/reporting"
	"centre-portal/internal/traffic"
	"centre-portal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type deps struct {
	handlers httpapi.Handlers
	throttle *auth.Throttle
	db       *sql.DB
	rdb      *redis.Client
}

// buildHandlers wires repositories into services. No business logic here.
func buildHandlers(cfg config.Config, db *sql.DB, rdb *redis.Client, tokens *auth.Manager) deps {
	centreSvc := centres.NewService(centres.NewPostgresRepo(db))
	langSvc := languages.NewService(languages.NewPostgresRepo(db))
	priceSvc := pricing.NewService(pricing.NewPostgresRepo(db))
	signins := audit.NewService(audit.NewPostgresRepo(db))
	throttle := auth.NewThrottle(cfg.Login.AttemptsPerMinute)

	h := httpapi.Handlers{
		Auth:           auth.NewService(auth.NewPostgresUsers(db), tokens, signins, throttle),
		Signins:        signins,
		Centres:        centreSvc,
		Languages:      langSvc,
		Operators:      operators.NewService(operators.NewPostgresRepo(db), centreSvc, langSvc, nil),
		Administrators: administrators.NewService(administrators.NewPostgresRepo(db), centreSvc),
		Pricing:        priceSvc,
		Reports: reporting.NewService(reporting.NewPostgresRepo(db), priceSvc, centreSvc, langSvc, reporting.Options{
			Location: cfg.Reports.Location,
			MaxDays:  cfg.Reports.MaxDays,
		}),
		Traffic: traffic.NewClient(traffic.Options{
			BaseURL:  cfg.Traffic.Host,
			Timeout:  cfg.Traffic.Timeout,
			CacheTTL: cfg.Traffic.CacheTTL,
			Cache:    traffic.NewRedisCache(rdb),
		}),
		Exports:      httpapi.NewRedisExportLimiter(rdb, cfg.Reports.ExportConcurrency),
		PushInterval: cfg.Traffic.PushInterval,
	}
	return deps{handlers: h, throttle: throttle, db: db, rdb: rdb}
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, d deps, authMW gin.HandlerFunc) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{"status": "ok", "postgres": "ok", "redis": "ok"}
		if err := utils.HealthCheck(c.Request.Context(), d.db, 2*time.Second); err != nil {
			status, body["status"], body["postgres"] = http.StatusServiceUnavailable, "degraded", err.Error()
		}
		if err := d.rdb.Ping(c.Request.Context()).Err(); err != nil {
			status, body["status"], body["redis"] = http.StatusServiceUnavailable, "degraded", err.Error()
		}
		c.JSON(status, body)
	})

	httpapi.Register(r, d.handlers, authMW)
}
