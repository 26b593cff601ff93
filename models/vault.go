// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// VaultRecord is the plaintext form of a vault entry. It exists only in
// client memory; the JSON encoding of this struct is the canonical byte form
// fed to the record cipher.
type VaultRecord struct {
	// Title is the display name of the entry (e.g. "Gmail").
	Title string `json:"title"`

	// Username is the login used on the target site.
	Username string `json:"username"`

	// Password is the secret value protected by the vault.
	Password string `json:"password"`

	// URL is the address of the site the credentials belong to.
	URL string `json:"url"`

	// Notes holds free-form user notes. May be empty.
	Notes string `json:"notes"`
}

// Matches reports whether term occurs in the title, username, url or notes,
// ignoring case. The password is never searched. An empty term matches.
func (r VaultRecord) Matches(term string) bool {
	term = strings.ToLower(term)
	for _, field := range []string{r.Title, r.Username, r.URL, r.Notes} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// VaultItem is a stored vault entry as seen by the server: an opaque
// encrypted payload tagged with its owner.
type VaultItem struct {
	// ID is the server-assigned identifier of the item.
	ID string `json:"id"`

	// OwnerID is the subject id of the identity that owns the item.
	OwnerID string `json:"userId"`

	// Payload is the encrypted record exactly as produced by the client.
	// The server never inspects it.
	Payload EncryptedBlob `json:"encryptedData"`

	// CreatedAt is the time the item was first stored.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the time of the last payload replacement.
	UpdatedAt time.Time `json:"updatedAt"`
}

// DecryptedItem pairs a stored item with its decrypted record on the client.
// Err is set instead of Record when the payload could not be decrypted with
// the current key.
type DecryptedItem struct {
	ID        string
	Record    VaultRecord
	CreatedAt time.Time
	UpdatedAt time.Time
	Err       error
}
