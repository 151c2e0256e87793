package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"bidportal/internal/logging"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// Run applies all pending migrations for the given driver ("postgres" or "sqlite").
func Run(db *sql.DB, driver string) error {
	dialect, dir := "postgres", "postgres"
	if driver == "sqlite" {
		dialect, dir = "sqlite3", "sqlite"
	}

	goose.SetBaseFS(embedded)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	logging.Info("running migrations", "driver", driver)
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
