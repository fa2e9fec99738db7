package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/jonesrussell/keyword-monitor/internal/logger"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// migrationFiles are applied in order by RunMigrations.
var migrationFiles = []string{
	"001_create_schema.sql",
	"002_create_views.sql",
}

// RunMigrations executes the SQL migration files on a test database
// connection. Integration tests call this after connecting; they skip
// when no database is reachable.
func RunMigrations(ctx context.Context, db *sql.DB, log logger.Logger) error {
	_, filename, _, _ := runtime.Caller(0)
	migrationsPath := filepath.Join(filepath.Dir(filename), "..", "..", "migrations")

	for _, name := range migrationFiles {
		migrationFile := filepath.Join(migrationsPath, name)
		sqlBytes, err := os.ReadFile(migrationFile)
		if err != nil {
			return fmt.Errorf("read migration file: %w", err)
		}

		if _, execErr := db.ExecContext(ctx, string(sqlBytes)); execErr != nil {
			return fmt.Errorf("execute migration %s: %w", name, execErr)
		}

		if log != nil {
			log.Info("Migration applied",
				logger.String("migration_file", migrationFile),
			)
		}
	}

	return nil
}
