package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the claim set carried by a session token. Subject ("sub")
// holds the user id; Email is a private claim.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Email is the e-mail address of the authenticated user.
	Email string `json:"email"`
}

// Identity returns the identity asserted by the claims. The result may be
// zero-valued if the token lacked required claims; callers must check
// [Identity.IsZero].
func (c *SessionClaims) Identity() Identity {
	return Identity{SubjectID: c.Subject, Email: c.Email}
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing).
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in a cookie or header.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// Identity is the subject the token was issued for or verified as.
	Identity Identity `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
