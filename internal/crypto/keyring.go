// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// keyRingService is the private Ed25519 implementation of [KeyRingService].
type keyRingService struct {
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
}

// NewKeyRing constructs a [KeyRingService] from a raw Ed25519 seed
// (ed25519.SeedSize bytes). Returns an error if the seed has the wrong
// length.
func NewKeyRing(seed []byte) (KeyRingService, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid key seed length: got %d, want %d", len(seed), ed25519.SeedSize)
	}

	privateKey := ed25519.NewKeyFromSeed(seed)
	return &keyRingService{
		privateKey: privateKey,
		publicKey:  privateKey.Public().(ed25519.PublicKey),
	}, nil
}

// LoadOrCreateKeyRing loads the instance identity key from path, generating
// and persisting a fresh Ed25519 seed on first start. The key file is written
// with mode 0600; it is the device's long-lived identity and must survive
// restarts so issued certificates stay verifiable.
func LoadOrCreateKeyRing(path string) (KeyRingService, error) {
	seed, err := os.ReadFile(path)
	if err == nil {
		return NewKeyRing(seed)
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read identity key file: %w", err)
	}

	seed = make([]byte, ed25519.SeedSize)
	if _, err = io.ReadFull(rand.Reader, seed); err != nil {
		return nil, fmt.Errorf("generate identity key seed: %w", err)
	}

	if err = os.WriteFile(path, seed, 0o600); err != nil {
		return nil, fmt.Errorf("write identity key file: %w", err)
	}

	return NewKeyRing(seed)
}

// Sign implements [KeyRingService].
func (k *keyRingService) Sign(payload []byte) []byte {
	return ed25519.Sign(k.privateKey, payload)
}

// Verify implements [KeyRingService]. A public key that does not decode to
// exactly ed25519.PublicKeySize bytes fails verification instead of
// panicking inside the ed25519 package.
func (k *keyRingService) Verify(payload []byte, signature []byte, publicKeyHex string) bool {
	publicKey, err := hex.DecodeString(publicKeyHex)
	if err != nil || len(publicKey) != ed25519.PublicKeySize {
		return false
	}
	if len(signature) != ed25519.SignatureSize {
		return false
	}

	return ed25519.Verify(ed25519.PublicKey(publicKey), payload, signature)
}

// PublicKeyHex implements [KeyRingService].
func (k *keyRingService) PublicKeyHex() string {
	return hex.EncodeToString(k.publicKey)
}
