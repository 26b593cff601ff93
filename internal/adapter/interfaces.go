// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client's transport to the vault server.
//
// [ServerAdapter] hides the protocol from the client services. The only
// implementation speaks HTTP/JSON through resty ([NewHTTPServerAdapter]).
// Non-2xx responses are mapped to the sentinel errors in errors.go so callers
// can use [errors.Is] without looking at status codes.
//
// Only encrypted blobs cross this boundary; records are sealed and opened by
// the caller.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the vault server.
type ServerAdapter interface {
	// SetToken stores the session token attached to every later request.
	SetToken(token string)

	// Token returns the current session token, or "" if none is set.
	Token() string

	// Me returns the identity the server derives from the current token.
	Me(ctx context.Context) (models.Identity, error)

	// GetSalt fetches the caller's key-derivation salt. The server creates it
	// on first request and returns the same bytes afterwards.
	GetSalt(ctx context.Context) ([]byte, error)

	// ListItems returns the caller's items, newest first.
	ListItems(ctx context.Context) ([]models.VaultItem, error)
	GetItem(ctx context.Context, id string) (models.VaultItem, error)
	CreateItem(ctx context.Context, payload models.EncryptedBlob) (models.VaultItem, error)
	UpdateItem(ctx context.Context, id string, payload models.EncryptedBlob) (models.VaultItem, error)
	DeleteItem(ctx context.Context, id string) error

	// Version returns the server build version.
	Version(ctx context.Context) (string, error)
}
