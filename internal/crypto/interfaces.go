package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/models"
)

// KeyDeriver turns a master secret into a 256-bit record key. The key exists
// only in client memory and is never sent to the server.
type KeyDeriver interface {
	// DeriveKey runs PBKDF2-HMAC-SHA256 over secret and salt. The output is
	// deterministic for a given pair.
	DeriveKey(secret string, salt []byte) ([]byte, error)

	// DeriveKeyContext is DeriveKey bounded by ctx. Derivation runs on its own
	// goroutine; if ctx ends first ErrDerivationTimeout is returned.
	DeriveKeyContext(ctx context.Context, secret string, salt []byte) ([]byte, error)

	// GenerateSalt returns SaltSize random bytes. Salts are not secret.
	GenerateSalt() ([]byte, error)
}

// RecordCipher seals and opens vault records. Blobs are self-contained:
// decryption needs only the blob and the key.
type RecordCipher interface {
	EncryptRecord(record models.VaultRecord, key []byte) (models.EncryptedBlob, error)
	DecryptRecord(blob models.EncryptedBlob, key []byte) (models.VaultRecord, error)
}
