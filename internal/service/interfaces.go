// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the vault's business logic.
//
// Server side, [AuthService] verifies session tokens and [VaultService] is the
// access gate in front of storage: every operation authenticates the raw
// token first, then scopes the storage call by the caller's subject id.
// [SaltService] hands out the per-user key-derivation salt.
//
// Client side, [VaultClientService] derives the record key from the master
// secret, seals and opens records locally, and ships only encrypted blobs
// through the server adapter.
package service

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// AuthService issues and verifies session tokens.
type AuthService interface {
	// CreateToken issues a signed token asserting identity.
	CreateToken(ctx context.Context, identity models.Identity) (models.Token, error)

	// VerifyToken returns the identity asserted by raw. ok is false for an
	// empty, malformed, forged, expired or incomplete token; no error is
	// reported for any of those.
	VerifyToken(ctx context.Context, raw string) (identity models.Identity, ok bool)

	// RequireAuth is VerifyToken that reports a failed verification as
	// ErrAuthRequired.
	RequireAuth(ctx context.Context, raw string) (models.Identity, error)
}

// VaultService is the owner-scoped gate in front of vault storage. Each
// operation takes the caller's raw session token.
type VaultService interface {
	List(ctx context.Context, token string) ([]models.VaultItem, error)
	Get(ctx context.Context, token, id string) (models.VaultItem, error)
	Create(ctx context.Context, token string, payload models.EncryptedBlob) (models.VaultItem, error)
	Update(ctx context.Context, token, id string, payload models.EncryptedBlob) (models.VaultItem, error)
	Delete(ctx context.Context, token, id string) error
}

// SaltService returns the caller's key-derivation salt, creating it on first
// use.
type SaltService interface {
	GetSalt(ctx context.Context, token string) ([]byte, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// IDGenerator produces new item identifiers.
type IDGenerator interface {
	Generate() string
}
