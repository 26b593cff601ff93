package service

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// VaultClientService is the client half of the vault. It owns the record key
// between Unlock and Lock; the key never leaves the process.
type VaultClientService interface {
	// Unlock fetches the caller's salt from the server and derives the record
	// key from master within the configured derivation timeout.
	Unlock(ctx context.Context, master string) error

	// Lock zeroes the in-memory record key.
	Lock()

	IsUnlocked() bool

	// Add seals record and stores the blob on the server.
	Add(ctx context.Context, record models.VaultRecord) (models.VaultItem, error)

	// List fetches and opens every item. An item that cannot be decrypted is
	// returned with Err set; it does not fail the whole list.
	List(ctx context.Context) ([]models.DecryptedItem, error)

	// Search is List narrowed to items whose title, username, url or notes
	// contain term, case-insensitively.
	Search(ctx context.Context, term string) ([]models.DecryptedItem, error)

	// Show fetches and opens a single item.
	Show(ctx context.Context, id string) (models.DecryptedItem, error)

	// Edit replaces the stored blob of id with a freshly sealed record.
	Edit(ctx context.Context, id string, record models.VaultRecord) (models.VaultItem, error)

	Delete(ctx context.Context, id string) error

	// Whoami reports the identity the server sees behind the session token.
	// It works on a locked vault.
	Whoami(ctx context.Context) (models.Identity, error)
}
