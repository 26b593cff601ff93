// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package passgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// DefaultLength is used by callers that do not ask for a specific length.
	DefaultLength = 16
	// MaxLength bounds a single generated password.
	MaxLength = 1024
)

// Options selects the character classes and the length of a password.
type Options struct {
	Length         int
	Uppercase      bool
	Lowercase      bool
	Digits         bool
	Symbols        bool
	ExcludeSimilar bool
}

// DefaultOptions enables every class and keeps look-alike characters.
func DefaultOptions() Options {
	return Options{
		Length:    DefaultLength,
		Uppercase: true,
		Lowercase: true,
		Digits:    true,
		Symbols:   true,
	}
}

// classes returns the enabled character sets in a fixed order.
func (o Options) classes() []string {
	var sets []string
	if o.Uppercase {
		sets = append(sets, o.trim(upperChars, "IL"))
	}
	if o.Lowercase {
		sets = append(sets, o.trim(lowerChars, "il"))
	}
	if o.Digits {
		sets = append(sets, o.trim(digitChars, "10"))
	}
	if o.Symbols {
		sets = append(sets, symbolChars)
	}
	return sets
}

func (o Options) trim(set, similar string) string {
	if !o.ExcludeSimilar {
		return set
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(similar, r) {
			return -1
		}
		return r
	}, set)
}

// Generate builds a password with at least one character from every enabled
// class. A length shorter than the number of classes is raised to it.
func Generate(opts Options) (string, error) {
	if opts.Length <= 0 || opts.Length > MaxLength {
		return "", fmt.Errorf("%w: got %d, max %d", ErrInvalidLength, opts.Length, MaxLength)
	}

	classes := opts.classes()
	if len(classes) == 0 {
		return "", ErrNoCharset
	}

	length := max(opts.Length, len(classes))
	charset := strings.Join(classes, "")
	password := make([]byte, 0, length)

	for _, class := range classes {
		c, err := pick(class)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}
	for len(password) < length {
		c, err := pick(charset)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	if err := shuffle(password); err != nil {
		return "", err
	}
	return string(password), nil
}

func pick(set string) (byte, error) {
	i, err := randIntn(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

// shuffle is a Fisher-Yates shuffle driven by crypto/rand.
func shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := randIntn(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

func randIntn(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}
	return int(v.Int64()), nil
}
