package models

import (
	"encoding/json"
	"strings"
)

// Certificate operations a payload may delegate.
const (
	OperationRead  = "read"
	OperationWrite = "write"
)

// CertificatePayload is the scope being delegated by a certificate: which
// instance holds it, what partition prefix it covers, which operations it
// allows, and the holder's public key used to verify certificates the holder
// issues further down the chain.
type CertificatePayload struct {
	// InstanceID is the identifier of the instance the certificate is
	// issued to.
	InstanceID string `json:"instance_id"`

	// Scope is an opaque partition prefix, optionally ending in "*"
	// (e.g. "facility/*" covers "facility/123").
	Scope string `json:"scope"`

	// Operations lists the delegated operations ("read", "write").
	Operations []string `json:"operations"`

	// PublicKey is the holder's Ed25519 public key, hex encoded.
	PublicKey string `json:"public_key"`
}

// Certificate is a node in the signature chain establishing delegation of
// authority over a partition scope. The signature doubles as the
// certificate's unique identifier.
type Certificate struct {
	// Signature is the hex-encoded Ed25519 signature over Serialized,
	// produced by the issuer's key. Primary key.
	Signature string `json:"signature"`

	// IssuerSignature references the certificate that authorized this one.
	// A self-signed root references itself.
	IssuerSignature string `json:"issuer_signature"`

	// Payload is the delegated scope, decoded from Serialized.
	Payload CertificatePayload `json:"payload"`

	// Serialized holds the exact canonical payload bytes that were signed.
	// Verification always runs against these bytes, never a re-encoding.
	Serialized json.RawMessage `json:"serialized"`

	// Trusted marks a locally trusted self-signed root. Local state only,
	// never transferred.
	Trusted bool `json:"-"`
}

// IsSelfSigned reports whether the certificate is its own issuer.
func (c Certificate) IsSelfSigned() bool {
	return c.Signature != "" && c.Signature == c.IssuerSignature
}

// scopePrefix strips the trailing wildcard, if any.
func scopePrefix(scope string) string {
	return strings.TrimSuffix(scope, "*")
}

// ScopeContains reports whether the payload's scope covers the given
// partition key. A scope covers every partition sharing its prefix.
func (p CertificatePayload) ScopeContains(partitionKey string) bool {
	return strings.HasPrefix(partitionKey, scopePrefix(p.Scope))
}

// ScopeWithin reports whether the payload's scope is a subset of the issuer
// scope: a certificate must not grant broader authority than its issuer
// holds.
func (p CertificatePayload) ScopeWithin(issuerScope string) bool {
	return strings.HasPrefix(scopePrefix(p.Scope), scopePrefix(issuerScope))
}

// Allows reports whether the payload delegates the given operation.
func (p CertificatePayload) Allows(operation string) bool {
	for _, op := range p.Operations {
		if op == operation {
			return true
		}
	}
	return false
}

// OperationsWithin reports whether every delegated operation is also held by
// the issuer.
func (p CertificatePayload) OperationsWithin(issuer CertificatePayload) bool {
	for _, op := range p.Operations {
		if !issuer.Allows(op) {
			return false
		}
	}
	return true
}
