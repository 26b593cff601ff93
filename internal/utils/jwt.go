// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidTokenParams is returned by GenerateJWTToken when any
	// required argument is empty or zero.
	ErrInvalidTokenParams = errors.New("invalid params for generating JWT token")
	// ErrMissingIdentityClaims is returned when a token verifies but does not
	// carry both "sub" and "email".
	ErrMissingIdentityClaims = errors.New("token is missing identity claims")
	// ErrInvalidAuthorizationHeader is returned by ParseBearerToken.
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT for identity.
//
// The token carries iss, sub (identity.SubjectID), email, iat and exp
// (now + tokenDuration). A negative tokenDuration yields an already
// expired token, which is useful in tests.
func GenerateJWTToken(issuer string, identity models.Identity, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" || identity.IsZero() {
		return models.Token{}, ErrInvalidTokenParams
	}

	now := time.Now()
	claims := &models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identity.SubjectID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: identity.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, Identity: identity}, nil
}

// ValidateAndParseJWTToken verifies tokenString and returns the identity it
// asserts.
//
// Validation covers the HS256 signature against tokenSignKey, the signing
// method (anything other than HS256 is rejected), the issuer, expiry, and
// presence of both "sub" and "email".
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	identity := claims.Identity()
	if identity.IsZero() {
		return models.Token{}, ErrMissingIdentityClaims
	}

	return models.Token{Token: token, SignedString: tokenString, Identity: identity}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
