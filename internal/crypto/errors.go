package crypto

import "errors"

var (
	// ErrDerivationFailed is returned when a key cannot be derived, e.g. the
	// secret or salt is empty. It is fatal for the unlock attempt and must not
	// be retried with the same input.
	ErrDerivationFailed = errors.New("key derivation failed")
	// ErrDerivationTimeout is returned by DeriveKeyContext when the context
	// expires before derivation completes.
	ErrDerivationTimeout = errors.New("key derivation timed out")
	// ErrDecryptFailed covers every way a blob can fail to open: malformed
	// encoding, truncated data, unknown version, wrong key, tampering, or a
	// plaintext that is not a record.
	ErrDecryptFailed = errors.New("record decryption failed")
	// ErrInvalidKey is returned when a key is not exactly KeySize bytes.
	ErrInvalidKey = errors.New("invalid key size")
)
