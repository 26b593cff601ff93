// Package migrations embeds the goose schema migrations for every supported
// SQL backend.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Dialect names a migration set together with its goose dialect.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

func (d Dialect) gooseDialect() (string, error) {
	switch d {
	case DialectPostgres:
		return "pgx", nil
	case DialectSQLite:
		return "sqlite3", nil
	}
	return "", fmt.Errorf("unknown dialect %q", string(d))
}

// Migrate applies all pending migrations of dialect to db.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	gooseDialect, err := dialect.gooseDialect()
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.UpContext(ctx, db, string(dialect)); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
