package client

import (
	"errors"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/service"
)

var (
	ErrNotATerminal  = errors.New("stdin is not a terminal")
	ErrEmptyMaster   = errors.New("master password must not be empty")
	ErrNothingToEdit = errors.New("no fields to change")
)

var hints = []struct {
	target error
	hint   string
}{
	{service.ErrAuthRequired, "not signed in: pass --token or set ADAPTER_TOKEN"},
	{service.ErrNotFound, "item not found"},
	{service.ErrEmptyPayload, "the server rejected an empty item"},
	{crypto.ErrDerivationTimeout, "key derivation took too long; raise --kdf-timeout"},
	{crypto.ErrDerivationFailed, "could not derive the vault key"},
	{crypto.ErrDecryptFailed, "cannot decrypt: wrong master password or damaged item"},
}

// friendlyError prefixes known failures with a hint while keeping the
// original chain for errors.Is.
func friendlyError(err error) error {
	if err == nil {
		return nil
	}
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return &hintError{hint: h.hint, err: err}
		}
	}
	return err
}

type hintError struct {
	hint string
	err  error
}

func (e *hintError) Error() string { return e.hint }

func (e *hintError) Unwrap() error { return e.err }
