package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

type saltService struct {
	auth    AuthService
	storage store.SaltStorage
	deriver crypto.KeyDeriver

	logger *logger.Logger
}

// NewSaltService constructs a SaltService. Fresh salts come from
// deriver.GenerateSalt.
func NewSaltService(auth AuthService, storage store.SaltStorage, deriver crypto.KeyDeriver, logger *logger.Logger) SaltService {
	return &saltService{auth: auth, storage: storage, deriver: deriver, logger: logger}
}

// GetSalt returns the caller's salt. A candidate is generated on every call
// but only persisted when the owner has none yet.
func (s *saltService) GetSalt(ctx context.Context, token string) ([]byte, error) {
	identity, err := s.auth.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}

	candidate, err := s.deriver.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaltUnavailable, err)
	}

	salt, err := s.storage.GetOrCreate(ctx, identity.SubjectID, candidate)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("owner_id", identity.SubjectID).Msg("salt lookup failed")
		return nil, fmt.Errorf("%w: %w", ErrSaltUnavailable, err)
	}

	return salt, nil
}
