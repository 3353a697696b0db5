package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps the JWT issued for a sync session after the peer's certificate
// chain has been validated.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry).
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
//
// InstanceID caches the "sub" claim (the peer instance the token was issued
// to) and Scope the partition prefix the session is authorized for; both are
// extracted once at parse time to avoid repeated claim lookups.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the issuing process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// Scope is the partition prefix the session may act on, copied from the
	// validated certificate payload.
	Scope string `json:"scope"`

	// Operations lists the operations the session may perform, copied from
	// the validated certificate leaf (see [OperationRead], [OperationWrite]).
	Operations []string `json:"operations,omitempty"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// InstanceID is the peer instance extracted from the "sub" claim.
	InstanceID string `json:"-"`
}

// GetInstanceID extracts the peer instance identifier from the token's
// "sub" (subject) claim.
//
// Returns an error if the subject claim is missing or empty.
func (t *Token) GetInstanceID() (string, error) {
	instanceID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting instance ID from token: %w", err)
	}
	if instanceID == "" {
		return "", fmt.Errorf("empty instance ID in token subject")
	}

	return instanceID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
