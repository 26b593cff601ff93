package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

const userSaltsTable = "user_salts"

type saltRepository struct {
	*DB
}

// NewSaltRepository constructs a SQL-backed [SaltStorage].
func NewSaltRepository(db *DB) SaltStorage {
	return &saltRepository{DB: db}
}

// GetOrCreate inserts candidate unless a salt already exists for ownerID and
// then reads back whatever is stored, so concurrent first calls agree on one
// salt.
func (r *saltRepository) GetOrCreate(ctx context.Context, ownerID string, candidate []byte) ([]byte, error) {
	log := logger.FromContext(ctx)

	insert, insertArgs, err := r.builder.
		Insert(userSaltsTable).
		Columns("owner_id", "salt").
		Values(ownerID, candidate).
		Suffix("ON CONFLICT (owner_id) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	sel, selArgs, err := r.builder.
		Select("salt").
		From(userSaltsTable).
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var salt []byte
	err = r.withRetry(ctx, func() error {
		if _, err := r.ExecContext(ctx, insert, insertArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if err := r.QueryRowContext(ctx, sel, selArgs...).Scan(&salt); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "saltRepository.GetOrCreate").
			Str("owner_id", ownerID).
			Msg("failed to get or create salt")
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("salt vanished after insert: %w", err)
		}
		return nil, err
	}

	return salt, nil
}
