package crypto

// KeyRingService is the opaque sign/verify capability consumed by the
// certificate chain. The replication core never touches key material
// directly; it signs payloads with the local identity key and verifies
// signatures against public keys carried in certificate payloads.
type KeyRingService interface {
	// Sign signs payload with the local instance's private key.
	Sign(payload []byte) []byte

	// Verify reports whether signature is a valid signature of payload under
	// the given hex-encoded public key. Malformed keys or signatures verify
	// as false, never panic.
	Verify(payload []byte, signature []byte, publicKeyHex string) bool

	// PublicKeyHex returns the local instance's public key, hex encoded, in
	// the form embedded into certificate payloads.
	PublicKeyHex() string
}
