package store

import (
	"bytes"
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-vault/models"
)

// MemoryStorage is an in-process implementation of [VaultStorage] and
// [SaltStorage]. Data is lost on restart.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]models.VaultItem
	salts map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		items: make(map[string]models.VaultItem),
		salts: make(map[string][]byte),
	}
}

func (m *MemoryStorage) FindByOwner(_ context.Context, ownerID string) ([]models.VaultItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]models.VaultItem, 0)
	for _, item := range m.items {
		if item.OwnerID == ownerID {
			items = append(items, item)
		}
	}

	slices.SortFunc(items, func(a, b models.VaultItem) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return items, nil
}

func (m *MemoryStorage) FindByIDAndOwner(_ context.Context, id, ownerID string) (models.VaultItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok || item.OwnerID != ownerID {
		return models.VaultItem{}, ErrVaultItemNotFound
	}
	return item, nil
}

func (m *MemoryStorage) Insert(_ context.Context, item models.VaultItem) (models.VaultItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.items[item.ID]; exists {
		return models.VaultItem{}, ErrVaultItemAlreadyExists
	}
	m.items[item.ID] = item
	return item, nil
}

func (m *MemoryStorage) UpdateByIDAndOwner(_ context.Context, id, ownerID string, payload models.EncryptedBlob, updatedAt time.Time) (models.VaultItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok || item.OwnerID != ownerID {
		return models.VaultItem{}, ErrVaultItemNotFound
	}
	item.Payload = payload
	item.UpdatedAt = updatedAt
	m.items[id] = item
	return item, nil
}

func (m *MemoryStorage) DeleteByIDAndOwner(_ context.Context, id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok || item.OwnerID != ownerID {
		return ErrVaultItemNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *MemoryStorage) GetOrCreate(_ context.Context, ownerID string, candidate []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if salt, ok := m.salts[ownerID]; ok {
		return bytes.Clone(salt), nil
	}
	m.salts[ownerID] = bytes.Clone(candidate)
	return bytes.Clone(candidate), nil
}
