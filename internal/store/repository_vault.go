package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

const vaultItemsTable = "vault_items"

var vaultItemColumns = []string{"id", "owner_id", "payload", "created_at", "updated_at"}

// vaultRepository is the SQL implementation of [VaultStorage], shared by the
// Postgres and SQLite backends. Queries are built with squirrel so only the
// placeholder format differs between dialects.
//
// Payloads are never logged; log entries carry owner_id and item_id only.
type vaultRepository struct {
	*DB
}

// NewVaultRepository constructs a [VaultStorage] on top of db.
func NewVaultRepository(db *DB) VaultStorage {
	return &vaultRepository{DB: db}
}

func (r *vaultRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.VaultItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(vaultItemColumns...).
		From(vaultItemsTable).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var items []models.VaultItem
	err = r.withRetry(ctx, func() error {
		rows, err := r.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		items = make([]models.VaultItem, 0, 16)
		for rows.Next() {
			item, err := scanVaultItem(rows)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			items = append(items, item)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.FindByOwner").
			Str("owner_id", ownerID).
			Msg("failed to list vault items")
		return nil, err
	}

	return items, nil
}

func (r *vaultRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (models.VaultItem, error) {
	query, args, err := r.builder.
		Select(vaultItemColumns...).
		From(vaultItemsTable).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "vaultRepository.FindByIDAndOwner", id, ownerID, query, args)
}

func (r *vaultRepository) Insert(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Insert(vaultItemsTable).
		Columns(vaultItemColumns...).
		Values(item.ID, item.OwnerID, item.Payload.String(), item.CreatedAt.UTC(), item.UpdatedAt.UTC()).
		ToSql()
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func() error {
		_, err := r.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.Insert").
			Str("owner_id", item.OwnerID).
			Str("item_id", item.ID).
			Msg("failed to insert vault item")
		if isUniqueViolation(err) {
			return models.VaultItem{}, ErrVaultItemAlreadyExists
		}
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return item, nil
}

func (r *vaultRepository) UpdateByIDAndOwner(ctx context.Context, id, ownerID string, payload models.EncryptedBlob, updatedAt time.Time) (models.VaultItem, error) {
	query, args, err := r.builder.
		Update(vaultItemsTable).
		Set("payload", payload.String()).
		Set("updated_at", updatedAt.UTC()).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		Suffix("RETURNING id, owner_id, payload, created_at, updated_at").
		ToSql()
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "vaultRepository.UpdateByIDAndOwner", id, ownerID, query, args)
}

func (r *vaultRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Delete(vaultItemsTable).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.withRetry(ctx, func() error {
		res, err := r.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.DeleteByIDAndOwner").
			Str("owner_id", ownerID).
			Str("item_id", id).
			Msg("failed to delete vault item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return ErrVaultItemNotFound
	}
	return nil
}

// queryOne runs a query that yields at most one vault item row.
func (r *vaultRepository) queryOne(ctx context.Context, fn, id, ownerID, query string, args []any) (models.VaultItem, error) {
	var item models.VaultItem
	err := r.withRetry(ctx, func() error {
		var err error
		item, err = scanVaultItem(r.QueryRowContext(ctx, query, args...))
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultItem{}, ErrVaultItemNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", fn).
			Str("owner_id", ownerID).
			Str("item_id", id).
			Msg("failed to query vault item")
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return item, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVaultItem(row rowScanner) (models.VaultItem, error) {
	var item models.VaultItem
	var payload string
	if err := row.Scan(&item.ID, &item.OwnerID, &payload, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return models.VaultItem{}, err
	}
	item.Payload = models.EncryptedBlob(payload)
	return item, nil
}
