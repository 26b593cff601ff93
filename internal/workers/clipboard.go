// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/atotto/clipboard"
)

// DefaultClipboardTTL is how long a copied secret stays on the clipboard.
const DefaultClipboardTTL = 15 * time.Second

// SystemClipboard is the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// ClipboardClearer copies a secret to the clipboard and clears it after ttl,
// unless the user has copied something else in the meantime.
type ClipboardClearer struct {
	clipboard Clipboard
	secret    string
	ttl       time.Duration

	logger *logger.Logger
}

func NewClipboardClearer(cb Clipboard, secret string, ttl time.Duration, logger *logger.Logger) *ClipboardClearer {
	if ttl <= 0 {
		ttl = DefaultClipboardTTL
	}
	return &ClipboardClearer{clipboard: cb, secret: secret, ttl: ttl, logger: logger}
}

// Copy puts the secret on the clipboard. Run must follow to clear it.
func (c *ClipboardClearer) Copy() error {
	if err := c.clipboard.WriteAll(c.secret); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// Run waits for the ttl, or for ctx to end, and then clears the clipboard.
// Cancelling ctx clears early rather than leaving the secret behind.
func (c *ClipboardClearer) Run(ctx context.Context) error {
	timer := time.NewTimer(c.ttl)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}

	return c.clear()
}

func (c *ClipboardClearer) clear() error {
	current, err := c.clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("read clipboard: %w", err)
	}
	if current != c.secret {
		c.logger.Debug().Msg("clipboard changed since copy; leaving it alone")
		return nil
	}

	if err = c.clipboard.WriteAll(""); err != nil {
		return fmt.Errorf("clear clipboard: %w", err)
	}
	c.logger.Debug().Msg("clipboard cleared")
	return nil
}
