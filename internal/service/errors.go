package service

import "errors"

var (
	// ErrAuthRequired is returned when the caller presents no valid session
	// token.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotFound covers both absent items and items owned by someone else.
	ErrNotFound = errors.New("item not found")

	ErrEmptyPayload    = errors.New("encrypted data is required")
	ErrPayloadTooLarge = errors.New("encrypted data is too large")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrSaltUnavailable       = errors.New("salt is unavailable")

	// ErrVaultLocked is returned by client operations that need the record key
	// before Unlock has succeeded.
	ErrVaultLocked = errors.New("vault is locked")
)
