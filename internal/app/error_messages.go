// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the human-readable messages the vault server writes
// into response bodies. The CLI matches none of them; it relies on status
// codes only.
package app

const (
	// MsgAuthRequired is returned when the session token is missing,
	// malformed, expired, or signed with a different key.
	MsgAuthRequired = "Authentication required"

	// MsgItemNotFound is returned for absent items and for items owned by
	// someone else. The two cases are indistinguishable on purpose.
	MsgItemNotFound = "Item not found"

	MsgPayloadRequired = "Encrypted data is required"
	MsgPayloadTooLarge = "Encrypted data is too large"

	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	MsgRouteNotFound = "Route not found"
	MsgServerError   = "Server error"

	MsgItemCreated = "Item created successfully"
	MsgItemUpdated = "Item updated successfully"
	MsgItemDeleted = "Item deleted successfully"
)
