// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

type clientVaultService struct {
	serverAdapter adapter.ServerAdapter
	deriver       crypto.KeyDeriver
	cipher        crypto.RecordCipher
	kdfTimeout    time.Duration

	mu  sync.RWMutex
	key []byte

	logger *logger.Logger
}

// NewClientVaultService constructs a locked VaultClientService.
func NewClientVaultService(
	serverAdapter adapter.ServerAdapter,
	deriver crypto.KeyDeriver,
	cipher crypto.RecordCipher,
	kdfTimeout time.Duration,
	logger *logger.Logger,
) VaultClientService {
	return &clientVaultService{
		serverAdapter: serverAdapter,
		deriver:       deriver,
		cipher:        cipher,
		kdfTimeout:    kdfTimeout,
		logger:        logger,
	}
}

func (s *clientVaultService) Unlock(ctx context.Context, master string) error {
	salt, err := s.serverAdapter.GetSalt(ctx)
	if err != nil {
		return fmt.Errorf("fetch salt: %w", mapAdapterError(err))
	}

	deriveCtx := ctx
	if s.kdfTimeout > 0 {
		var cancel context.CancelFunc
		deriveCtx, cancel = context.WithTimeout(ctx, s.kdfTimeout)
		defer cancel()
	}

	key, err := s.deriver.DeriveKeyContext(deriveCtx, master, salt)
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}

	s.mu.Lock()
	crypto.Wipe(s.key)
	s.key = key
	s.mu.Unlock()

	s.logger.Debug().Msg("vault unlocked")
	return nil
}

func (s *clientVaultService) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	crypto.Wipe(s.key)
	s.key = nil
}

func (s *clientVaultService) IsUnlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.key) > 0
}

func (s *clientVaultService) Add(ctx context.Context, record models.VaultRecord) (models.VaultItem, error) {
	blob, err := s.seal(record)
	if err != nil {
		return models.VaultItem{}, err
	}

	item, err := s.serverAdapter.CreateItem(ctx, blob)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("create item: %w", mapAdapterError(err))
	}

	return item, nil
}

func (s *clientVaultService) List(ctx context.Context) ([]models.DecryptedItem, error) {
	key, err := s.currentKey()
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(key)

	items, err := s.serverAdapter.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", mapAdapterError(err))
	}

	decrypted := make([]models.DecryptedItem, 0, len(items))
	for _, item := range items {
		d := s.open(item, key)
		if d.Err != nil {
			s.logger.Warn().Str("item_id", item.ID).Msg("vault item could not be decrypted")
		}
		decrypted = append(decrypted, d)
	}

	return decrypted, nil
}

// Search lists the items whose title, username, url or notes contain term,
// ignoring case. Matching runs after decryption because the server only holds
// ciphertext. Items that fail to decrypt only match an empty term.
func (s *clientVaultService) Search(ctx context.Context, term string) ([]models.DecryptedItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return items, nil
	}

	matched := make([]models.DecryptedItem, 0, len(items))
	for _, it := range items {
		if it.Err == nil && it.Record.Matches(term) {
			matched = append(matched, it)
		}
	}
	return matched, nil
}

func (s *clientVaultService) Show(ctx context.Context, id string) (models.DecryptedItem, error) {
	key, err := s.currentKey()
	if err != nil {
		return models.DecryptedItem{}, err
	}
	defer crypto.Wipe(key)

	item, err := s.serverAdapter.GetItem(ctx, id)
	if err != nil {
		return models.DecryptedItem{}, fmt.Errorf("get item: %w", mapAdapterError(err))
	}

	d := s.open(item, key)
	if d.Err != nil {
		return d, d.Err
	}
	return d, nil
}

func (s *clientVaultService) Edit(ctx context.Context, id string, record models.VaultRecord) (models.VaultItem, error) {
	blob, err := s.seal(record)
	if err != nil {
		return models.VaultItem{}, err
	}

	item, err := s.serverAdapter.UpdateItem(ctx, id, blob)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("update item: %w", mapAdapterError(err))
	}

	return item, nil
}

func (s *clientVaultService) Delete(ctx context.Context, id string) error {
	if err := s.serverAdapter.DeleteItem(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", mapAdapterError(err))
	}
	return nil
}

func (s *clientVaultService) Whoami(ctx context.Context) (models.Identity, error) {
	id, err := s.serverAdapter.Me(ctx)
	if err != nil {
		return models.Identity{}, fmt.Errorf("whoami: %w", mapAdapterError(err))
	}
	return id, nil
}

func (s *clientVaultService) seal(record models.VaultRecord) (models.EncryptedBlob, error) {
	key, err := s.currentKey()
	if err != nil {
		return "", err
	}
	defer crypto.Wipe(key)

	blob, err := s.cipher.EncryptRecord(record, key)
	if err != nil {
		return "", fmt.Errorf("encrypt record: %w", err)
	}
	return blob, nil
}

func (s *clientVaultService) open(item models.VaultItem, key []byte) models.DecryptedItem {
	d := models.DecryptedItem{
		ID:        item.ID,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}

	record, err := s.cipher.DecryptRecord(item.Payload, key)
	if err != nil {
		d.Err = fmt.Errorf("decrypt item %s: %w", item.ID, err)
		return d
	}

	d.Record = record
	return d
}

// currentKey returns a copy of the key so Lock can wipe the original while a
// caller still holds it. Callers wipe the copy when done.
func (s *clientVaultService) currentKey() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.key) == 0 {
		return nil, ErrVaultLocked
	}
	return append([]byte(nil), s.key...), nil
}
