package config

import "errors"

// Validation errors returned when a configuration group is incomplete or
// inconsistent.
var (
	// ErrInvalidAppConfigs indicates missing token settings or a non-positive
	// derivation timeout.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates a missing listen address or
	// non-positive server timeouts.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing server URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates an unknown driver or a missing DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
