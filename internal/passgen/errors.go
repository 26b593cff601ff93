package passgen

import "errors"

var (
	ErrNoCharset     = errors.New("at least one character type must be selected")
	ErrInvalidLength = errors.New("password length must be positive")
)
