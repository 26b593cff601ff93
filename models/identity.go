// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Identity is the authenticated subject asserted by a verified session token.
// Every vault operation is scoped by Identity.SubjectID.
type Identity struct {
	// SubjectID is the user identifier carried in the "sub" claim.
	SubjectID string `json:"id"`

	// Email is the user e-mail carried in the "email" claim.
	Email string `json:"email"`
}

// IsZero reports whether the identity lacks any of its required fields.
func (i Identity) IsZero() bool {
	return i.SubjectID == "" || i.Email == ""
}
