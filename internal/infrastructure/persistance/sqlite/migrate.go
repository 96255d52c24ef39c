package sqlite

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

const sqliteDialect = "sqlite3"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate runs all pending SQL migrations embedded in the binary.
//
// Parameters:
//   - db: open database handle
//
// Returns:
//   - error: any error applying migrations
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}
