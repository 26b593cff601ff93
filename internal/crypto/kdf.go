// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements client-side vault cryptography: deriving a
// record key from the master secret and sealing records with it. Nothing in
// this package touches the network or storage.
package crypto

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 work factor.
	DefaultIterations = 100_000
	// KeySize is the derived key length in bytes (256 bits).
	KeySize = 32
	// SaltSize is the length of salts produced by GenerateSalt.
	SaltSize = 16
)

type keyDeriver struct {
	iterations int
}

// DeriverOption configures a KeyDeriver.
type DeriverOption func(*keyDeriver)

// WithIterations overrides the PBKDF2 iteration count. Test use only: keys
// derived with a non-default count cannot open records sealed by other
// clients.
func WithIterations(n int) DeriverOption {
	return func(k *keyDeriver) {
		if n > 0 {
			k.iterations = n
		}
	}
}

// NewKeyDeriver constructs a [KeyDeriver] using DefaultIterations.
func NewKeyDeriver(opts ...DeriverOption) KeyDeriver {
	k := &keyDeriver{iterations: DefaultIterations}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

var defaultDeriver = NewKeyDeriver()

// DeriveKey derives a record key with the default work factor.
func DeriveKey(secret string, salt []byte) ([]byte, error) {
	return defaultDeriver.DeriveKey(secret, salt)
}

// DeriveKeyContext derives a record key with the default work factor,
// bounded by ctx.
func DeriveKeyContext(ctx context.Context, secret string, salt []byte) ([]byte, error) {
	return defaultDeriver.DeriveKeyContext(ctx, secret, salt)
}

// GenerateSalt returns a fresh random salt.
func GenerateSalt() ([]byte, error) {
	return defaultDeriver.GenerateSalt()
}

func (k *keyDeriver) DeriveKey(secret string, salt []byte) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty secret", ErrDerivationFailed)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", ErrDerivationFailed)
	}

	return pbkdf2.Key([]byte(secret), salt, k.iterations, KeySize, sha256.New), nil
}

func (k *keyDeriver) DeriveKeyContext(ctx context.Context, secret string, salt []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationTimeout, err)
	}

	type result struct {
		key []byte
		err error
	}
	done := make(chan result)
	go func() {
		key, err := k.DeriveKey(secret, salt)
		select {
		case done <- result{key: key, err: err}:
		case <-ctx.Done():
			// nobody is waiting for this key any more
			Wipe(key)
		}
	}()

	select {
	case res := <-done:
		return res.key, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrDerivationTimeout, ctx.Err())
	}
}

func (k *keyDeriver) GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// Wipe overwrites key with zeros.
func Wipe(key []byte) {
	clear(key)
}
