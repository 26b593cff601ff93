// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pass-vault/models"
)

// blobVersion prefixes every sealed blob so the format can evolve.
const blobVersion byte = 1

// Blob layout after base64 decoding: version(1) ‖ nonce(12) ‖ ciphertext+tag.
const minBlobSize = 1 + 12 + 16

type recordCipher struct{}

// NewRecordCipher constructs an AES-256-GCM [RecordCipher].
func NewRecordCipher() RecordCipher {
	return recordCipher{}
}

// EncryptRecord seals record under key. Each call draws a fresh nonce, so
// encrypting the same record twice yields different blobs.
func EncryptRecord(record models.VaultRecord, key []byte) (models.EncryptedBlob, error) {
	return recordCipher{}.EncryptRecord(record, key)
}

// DecryptRecord opens a blob produced by EncryptRecord.
func DecryptRecord(blob models.EncryptedBlob, key []byte) (models.VaultRecord, error) {
	return recordCipher{}.DecryptRecord(blob, key)
}

func (recordCipher) EncryptRecord(record models.VaultRecord, key []byte) (models.EncryptedBlob, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	plaintext, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, 1+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, blobVersion)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, []byte{blobVersion})

	return models.EncryptedBlob(base64.StdEncoding.EncodeToString(out)), nil
}

func (recordCipher) DecryptRecord(blob models.EncryptedBlob, key []byte) (models.VaultRecord, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return models.VaultRecord{}, err
	}

	raw, err := base64.StdEncoding.DecodeString(blob.String())
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: decode base64: %w", ErrDecryptFailed, err)
	}
	if len(raw) < minBlobSize {
		return models.VaultRecord{}, fmt.Errorf("%w: blob too short", ErrDecryptFailed)
	}
	if raw[0] != blobVersion {
		return models.VaultRecord{}, fmt.Errorf("%w: unknown blob version %d", ErrDecryptFailed, raw[0])
	}

	nonceSize := gcm.NonceSize()
	nonce, ciphertext := raw[1:1+nonceSize], raw[1+nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, raw[:1])
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: open: %w", ErrDecryptFailed, err)
	}

	var record models.VaultRecord
	if err := json.Unmarshal(plaintext, &record); err != nil {
		return models.VaultRecord{}, fmt.Errorf("%w: unmarshal record: %w", ErrDecryptFailed, err)
	}

	return record, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKey, len(key), KeySize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
