// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

// vaultService runs every request through the same sequence: authenticate
// the token, validate input, then call storage scoped by the caller's
// subject id. Payloads are stored and returned untouched.
type vaultService struct {
	auth      AuthService
	storage   store.VaultStorage
	validator validators.Validator
	ids       IDGenerator
	now       func() time.Time

	logger *logger.Logger
}

// VaultServiceOption customizes a VaultService.
type VaultServiceOption func(*vaultService)

// WithClock replaces time.Now for item timestamps.
func WithClock(now func() time.Time) VaultServiceOption {
	return func(s *vaultService) {
		s.now = now
	}
}

// NewVaultService wires the gate to its collaborators.
func NewVaultService(
	auth AuthService,
	storage store.VaultStorage,
	validator validators.Validator,
	ids IDGenerator,
	logger *logger.Logger,
	opts ...VaultServiceOption,
) VaultService {
	s := &vaultService{
		auth:      auth,
		storage:   storage,
		validator: validator,
		ids:       ids,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *vaultService) List(ctx context.Context, token string) ([]models.VaultItem, error) {
	identity, err := s.auth.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}

	items, err := s.storage.FindByOwner(ctx, identity.SubjectID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("owner_id", identity.SubjectID).Msg("listing vault items failed")
		return nil, fmt.Errorf("list vault items: %w", err)
	}
	if items == nil {
		items = []models.VaultItem{}
	}

	return items, nil
}

func (s *vaultService) Get(ctx context.Context, token, id string) (models.VaultItem, error) {
	identity, err := s.auth.RequireAuth(ctx, token)
	if err != nil {
		return models.VaultItem{}, err
	}
	if err = s.validateID(ctx, id); err != nil {
		return models.VaultItem{}, err
	}

	item, err := s.storage.FindByIDAndOwner(ctx, id, identity.SubjectID)
	if err != nil {
		return models.VaultItem{}, s.storageError(ctx, err, "get", identity.SubjectID, id)
	}

	return item, nil
}

func (s *vaultService) Create(ctx context.Context, token string, payload models.EncryptedBlob) (models.VaultItem, error) {
	identity, err := s.auth.RequireAuth(ctx, token)
	if err != nil {
		return models.VaultItem{}, err
	}
	if err = s.validatePayload(ctx, payload); err != nil {
		return models.VaultItem{}, err
	}

	now := s.now().UTC()
	item := models.VaultItem{
		ID:        s.ids.Generate(),
		OwnerID:   identity.SubjectID,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.storage.Insert(ctx, item)
	if err != nil {
		return models.VaultItem{}, s.storageError(ctx, err, "create", identity.SubjectID, item.ID)
	}

	logger.FromContext(ctx).Debug().
		Str("owner_id", identity.SubjectID).
		Str("item_id", created.ID).
		Msg("vault item created")

	return created, nil
}

func (s *vaultService) Update(ctx context.Context, token, id string, payload models.EncryptedBlob) (models.VaultItem, error) {
	identity, err := s.auth.RequireAuth(ctx, token)
	if err != nil {
		return models.VaultItem{}, err
	}
	if err = s.validateID(ctx, id); err != nil {
		return models.VaultItem{}, err
	}
	if err = s.validatePayload(ctx, payload); err != nil {
		return models.VaultItem{}, err
	}

	updated, err := s.storage.UpdateByIDAndOwner(ctx, id, identity.SubjectID, payload, s.now().UTC())
	if err != nil {
		return models.VaultItem{}, s.storageError(ctx, err, "update", identity.SubjectID, id)
	}

	return updated, nil
}

func (s *vaultService) Delete(ctx context.Context, token, id string) error {
	identity, err := s.auth.RequireAuth(ctx, token)
	if err != nil {
		return err
	}
	if err = s.validateID(ctx, id); err != nil {
		return err
	}

	if err = s.storage.DeleteByIDAndOwner(ctx, id, identity.SubjectID); err != nil {
		return s.storageError(ctx, err, "delete", identity.SubjectID, id)
	}

	return nil
}

// validateID reports a malformed id as ErrNotFound: such an item cannot
// exist, and the caller learns nothing more than from a missing one.
func (s *vaultService) validateID(ctx context.Context, id string) error {
	if err := s.validator.Validate(ctx, id, validators.FieldID); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *vaultService) validatePayload(ctx context.Context, payload models.EncryptedBlob) error {
	err := s.validator.Validate(ctx, payload, validators.FieldPayload)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, validators.ErrPayloadTooLarge):
		return ErrPayloadTooLarge
	default:
		return ErrEmptyPayload
	}
}

func (s *vaultService) storageError(ctx context.Context, err error, op, ownerID, itemID string) error {
	if errors.Is(err, store.ErrVaultItemNotFound) {
		return ErrNotFound
	}

	logger.FromContext(ctx).Err(err).
		Str("op", op).
		Str("owner_id", ownerID).
		Str("item_id", itemID).
		Msg("vault storage call failed")

	return fmt.Errorf("%s vault item: %w", op, err)
}
