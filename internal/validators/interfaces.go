// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds input checks applied by the service layer before
// anything reaches storage.
//
// A [Validator] receives a value and, optionally, the names of the fields to
// check. Without field names every known field of the value is checked.
// Encrypted payloads are treated as opaque: validators look at presence and
// size only.
package validators

import "context"

// Validator validates the provided input, optionally restricted to the named
// fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
