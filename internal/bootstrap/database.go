package bootstrap

import (
	"fmt"

	"github.com/jonesrussell/keyword-monitor/internal/config"
	"github.com/jonesrussell/keyword-monitor/internal/database"
	"github.com/jonesrussell/keyword-monitor/internal/logger"
)

// SetupDatabase creates the PostgreSQL connection pool.
func SetupDatabase(cfg *config.Config, log logger.Logger) (*database.DB, error) {
	db, err := database.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}
	return db, nil
}
