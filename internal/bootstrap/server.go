package bootstrap

import (
	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/keyword-monitor/internal/api"
	"github.com/jonesrussell/keyword-monitor/internal/config"
	"github.com/jonesrussell/keyword-monitor/internal/database"
	"github.com/jonesrussell/keyword-monitor/internal/events"
	"github.com/jonesrussell/keyword-monitor/internal/httpserver"
	"github.com/jonesrussell/keyword-monitor/internal/logger"
	"github.com/jonesrussell/keyword-monitor/internal/metrics"
	"github.com/jonesrussell/keyword-monitor/internal/repository"
)

// SetupHTTPServer wires repositories, handlers, health checks, and
// metrics into a ready-to-run server.
func SetupHTTPServer(
	cfg *config.Config,
	db *database.DB,
	publisher *events.Publisher,
	redisPing func() error,
	log logger.Logger,
) *httpserver.Server {
	stores := api.Stores{
		Categories: repository.NewCategoryRepository(db.DB(), log),
		Keywords:   repository.NewKeywordRepository(db.DB(), log),
		URLs:       repository.NewURLRepository(db.DB(), log),
		Scans:      repository.NewScanRepository(db.DB(), log),
	}

	m := metrics.New()

	serverCfg := &httpserver.Config{
		Port:           cfg.Server.Port,
		Debug:          cfg.Debug,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		ServiceName:    "keyword-monitor",
		ServiceVersion: version,
		CORS: httpserver.CORSConfig{
			Enabled:        true,
			AllowedOrigins: cfg.Server.CORSOrigins,
		},
	}

	return httpserver.New(serverCfg, log, func(router *gin.Engine) {
		checks := map[string]httpserver.HealthChecker{
			"database": httpserver.DatabaseHealthChecker(db.Ping),
		}
		if redisPing != nil {
			checks["redis"] = httpserver.RedisHealthChecker(redisPing)
		}
		httpserver.RegisterHealthRoutes(router, httpserver.HealthOptions{
			ServiceName:    serverCfg.ServiceName,
			ServiceVersion: serverCfg.ServiceVersion,
			Checks:         checks,
		})

		api.RegisterRoutes(router, stores, publisher, m, log)
	})
}
