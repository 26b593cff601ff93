// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/migrations"
)

const (
	maxAttempts  = 3
	retryBackoff = 50 * time.Millisecond
)

// DB wraps a *sql.DB together with the dialect-specific pieces the
// repositories need: a squirrel builder with the right placeholder format,
// a migration dialect, and an error classifier for retries.
type DB struct {
	*sql.DB
	dialect            migrations.Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect migrations.Dialect, placeholder sq.PlaceholderFormat, classifier ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		logger:             log,
	}
}

// Migrate applies all pending schema migrations for the connection dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}

// withRetry runs op until it succeeds, returns a non-retryable error, the
// attempt budget is spent, or ctx ends.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable || attempt == maxAttempts {
			return err
		}

		logger.FromContext(ctx).Warn().
			Err(err).
			Int("attempt", attempt).
			Msg("retryable database error")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	return err
}
