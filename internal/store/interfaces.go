package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pass-vault/models"
)

// VaultStorage persists opaque vault items. Every method is scoped by owner:
// an item owned by someone else behaves exactly like a missing one and
// yields [ErrVaultItemNotFound].
type VaultStorage interface {
	// FindByOwner returns all items of ownerID, newest first.
	FindByOwner(ctx context.Context, ownerID string) ([]models.VaultItem, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (models.VaultItem, error)
	// Insert stores item as is; ID, owner and timestamps are set by the caller.
	Insert(ctx context.Context, item models.VaultItem) (models.VaultItem, error)
	// UpdateByIDAndOwner replaces the payload and bumps updated_at.
	UpdateByIDAndOwner(ctx context.Context, id, ownerID string, payload models.EncryptedBlob, updatedAt time.Time) (models.VaultItem, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error
}

// SaltStorage keeps one key-derivation salt per owner.
type SaltStorage interface {
	// GetOrCreate returns the stored salt of ownerID. If none exists,
	// candidate is stored and returned. An existing salt is never replaced.
	GetOrCreate(ctx context.Context, ownerID string, candidate []byte) ([]byte, error)
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
