package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"jobtracker-backend/internal/shared/telemetry"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

var gooseOnce sync.Once
var gooseErr error

func setupGoose() error {
	gooseOnce.Do(func() {
		goose.SetBaseFS(migrationFiles)
		gooseErr = goose.SetDialect("postgres")
	})
	return gooseErr
}

// RunMigrations applies every pending embedded migration. A nil database is
// a no-op so in-memory runs can share the call site.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	return Migrate(ctx, database, "up")
}

// Migrate runs a goose command (up, down, status, version) against the
// embedded migrations.
func Migrate(ctx context.Context, database *sql.DB, command string) error {
	if database == nil {
		return nil
	}
	if err := setupGoose(); err != nil {
		return err
	}

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, database, migrationsDir)
	case "down":
		err = goose.DownContext(ctx, database, migrationsDir)
	case "status":
		err = goose.StatusContext(ctx, database, migrationsDir)
	case "version":
		var v int64
		v, err = goose.GetDBVersionContext(ctx, database)
		if err == nil {
			telemetry.Info("db.version", map[string]any{"version": v})
		}
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	telemetry.Info("db.migrated", map[string]any{"command": command})
	return nil
}
