package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
	"github.com/MKhiriev/go-pass-vault/models"
)

// authService verifies HS256 session tokens against a secret fixed at
// construction.
type authService struct {
	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim required on every token.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService from the token settings in cfg.
// The returned service is safe for concurrent use.
func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

func (a *authService) CreateToken(ctx context.Context, identity models.Identity) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, identity, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func (a *authService) VerifyToken(ctx context.Context, raw string) (models.Identity, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.Identity{}, false
	}

	token, err := utils.ValidateAndParseJWTToken(raw, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("session token rejected")
		return models.Identity{}, false
	}

	return token.Identity, true
}

func (a *authService) RequireAuth(ctx context.Context, raw string) (models.Identity, error) {
	identity, ok := a.VerifyToken(ctx, raw)
	if !ok {
		return models.Identity{}, ErrAuthRequired
	}
	return identity, nil
}
