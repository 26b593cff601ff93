package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyPayload    = errors.New("encrypted data is required")
	ErrPayloadTooLarge = errors.New("encrypted data is too large")
	ErrInvalidItemID   = errors.New("invalid vault item id")
)
