// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"unicode"

	"github.com/MKhiriev/go-pass-vault/models"
)

// Field names accepted by [VaultItemValidator].
const (
	// FieldPayload targets the encrypted blob of an item or request.
	FieldPayload = "payload"

	// FieldID targets the server-assigned item identifier.
	FieldID = "id"
)

const (
	// MaxPayloadSize is the largest encrypted blob accepted, in bytes.
	MaxPayloadSize = 256 << 10

	// MaxItemIDLength bounds item identifiers.
	MaxItemIDLength = 64
)

// VaultItemValidator checks the shape of vault items and requests. The
// payload is never decoded: only its presence and size are checked.
type VaultItemValidator struct{}

// NewVaultItemValidator constructs a [VaultItemValidator].
func NewVaultItemValidator() Validator {
	return &VaultItemValidator{}
}

// Validate accepts [models.VaultItem], [models.VaultItemRequest],
// [models.EncryptedBlob] (payload only) and a bare string item id (id only),
// by value or pointer.
func (v *VaultItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultItem:
		return v.validateItem(value, fields...)
	case *models.VaultItem:
		return v.validateItem(*value, fields...)

	case models.VaultItemRequest:
		return v.validatePayloadOnly(value.Payload, fields...)
	case *models.VaultItemRequest:
		return v.validatePayloadOnly(value.Payload, fields...)

	case models.EncryptedBlob:
		return v.validatePayloadOnly(value, fields...)

	case string:
		return v.validateIDOnly(value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *VaultItemValidator) validateItem(item models.VaultItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldPayload}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if err := validateItemID(item.ID); err != nil {
				return err
			}
		case FieldPayload:
			if err := validatePayload(item.Payload); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultItemValidator) validatePayloadOnly(payload models.EncryptedBlob, fields ...string) error {
	for _, f := range fields {
		if f != FieldPayload {
			return ErrUnknownField
		}
	}
	return validatePayload(payload)
}

func (v *VaultItemValidator) validateIDOnly(id string, fields ...string) error {
	for _, f := range fields {
		if f != FieldID {
			return ErrUnknownField
		}
	}
	return validateItemID(id)
}

func validatePayload(payload models.EncryptedBlob) error {
	if payload.IsEmpty() {
		return ErrEmptyPayload
	}
	if len(payload) > MaxPayloadSize {
		return ErrPayloadTooLarge
	}
	return nil
}

func validateItemID(id string) error {
	if id == "" || len(id) > MaxItemIDLength {
		return ErrInvalidItemID
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == '/' {
			return ErrInvalidItemID
		}
	}
	return nil
}
