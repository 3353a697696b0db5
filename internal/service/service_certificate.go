// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-peer-sync/internal/crypto"
	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/internal/store"
	"github.com/MKhiriev/go-peer-sync/models"
)

// maxChainHops bounds the issuer walk during validation. Chains in practice
// are two or three hops deep; the bound exists so a cycle of self-referencing
// certificates terminates instead of looping.
const maxChainHops = 32

// certificateService is the concrete implementation of [CertificateService].
//
// Signatures are always verified against the certificate's Serialized bytes,
// never a re-encoding of Payload: the bytes that were signed are the bytes
// that are checked. Payload is treated as a convenience decode of Serialized
// and is re-derived during validation so a tampered Payload cannot smuggle a
// wider scope past the signature.
type certificateService struct {
	logger *logger.Logger
	keys   crypto.KeyRingService
	certs  store.CertificateRepository
}

// NewCertificateService constructs a [CertificateService].
func NewCertificateService(storages *store.Storages, keys crypto.KeyRingService, logger *logger.Logger) CertificateService {
	logger.Debug().Msg("creating certificate service")
	return &certificateService{
		logger: logger,
		keys:   keys,
		certs:  storages.Certificates,
	}
}

// IssueRoot implements [CertificateService].
func (s *certificateService) IssueRoot(ctx context.Context, instanceID, scope string, operations []string) (models.Certificate, error) {
	if instanceID == "" || scope == "" || len(operations) == 0 {
		return models.Certificate{}, ErrInvalidDataProvided
	}

	payload := models.CertificatePayload{
		InstanceID: instanceID,
		Scope:      scope,
		Operations: operations,
		PublicKey:  s.keys.PublicKeyHex(),
	}

	cert, err := s.sign(payload)
	if err != nil {
		return models.Certificate{}, err
	}
	cert.IssuerSignature = cert.Signature
	cert.Trusted = true

	if err = s.certs.SaveCertificate(ctx, cert); err != nil {
		return models.Certificate{}, fmt.Errorf("save root certificate: %w", err)
	}
	if err = s.certs.MarkTrusted(ctx, cert.Signature); err != nil {
		return models.Certificate{}, fmt.Errorf("trust root certificate: %w", err)
	}

	s.logger.Info().Str("instance_id", instanceID).Str("scope", scope).Msg("issued root certificate")

	return cert, nil
}

// Issue implements [CertificateService].
func (s *certificateService) Issue(ctx context.Context, issuerSignature string, payload models.CertificatePayload) (models.Certificate, error) {
	if payload.InstanceID == "" || payload.Scope == "" || payload.PublicKey == "" || len(payload.Operations) == 0 {
		return models.Certificate{}, ErrInvalidDataProvided
	}

	issuer, err := s.certs.GetCertificate(ctx, issuerSignature)
	if err != nil {
		return models.Certificate{}, err
	}

	if s.keys.PublicKeyHex() != issuer.Payload.PublicKey {
		return models.Certificate{}, ErrNotCertificateHolder
	}

	if !payload.ScopeWithin(issuer.Payload.Scope) || !payload.OperationsWithin(issuer.Payload) {
		return models.Certificate{}, fmt.Errorf("%w: scope %q under issuer %q", ErrScopeViolation, payload.Scope, issuer.Payload.Scope)
	}

	cert, err := s.sign(payload)
	if err != nil {
		return models.Certificate{}, err
	}
	cert.IssuerSignature = issuer.Signature

	if err = s.certs.SaveCertificate(ctx, cert); err != nil {
		return models.Certificate{}, fmt.Errorf("save certificate: %w", err)
	}

	s.logger.Info().
		Str("instance_id", payload.InstanceID).
		Str("scope", payload.Scope).
		Msg("issued certificate")

	return cert, nil
}

// Validate implements [CertificateService].
//
// The walk starts at the leaf (chain[0]) and follows IssuerSignature upward.
// Certificates missing from the presented chain are looked up in the local
// store, so a peer only has to present what the validator might not already
// hold.
func (s *certificateService) Validate(ctx context.Context, chain []models.Certificate) (models.Certificate, error) {
	if len(chain) == 0 {
		return models.Certificate{}, ErrInvalidDataProvided
	}

	presented := make(map[string]models.Certificate, len(chain))
	for _, cert := range chain {
		presented[cert.Signature] = cert
	}

	leaf, err := decodePayload(chain[0])
	if err != nil {
		return models.Certificate{}, err
	}

	visited := make([]models.Certificate, 0, len(chain))
	cert := leaf

	for hop := 0; hop < maxChainHops; hop++ {
		if cert.IsSelfSigned() {
			if err := s.verifySignature(cert, cert.Payload.PublicKey); err != nil {
				return models.Certificate{}, err
			}

			stored, err := s.certs.GetCertificate(ctx, cert.Signature)
			if err != nil || !stored.Trusted {
				return models.Certificate{}, fmt.Errorf("%w: root %s", ErrUntrustedChain, shortSignature(cert.Signature))
			}

			for _, validated := range visited {
				if err := s.certs.SaveCertificate(ctx, validated); err != nil {
					return models.Certificate{}, fmt.Errorf("save validated certificate: %w", err)
				}
			}

			return leaf, nil
		}

		issuer, err := s.resolveIssuer(ctx, cert.IssuerSignature, presented)
		if err != nil {
			return models.Certificate{}, err
		}

		if err := s.verifySignature(cert, issuer.Payload.PublicKey); err != nil {
			return models.Certificate{}, err
		}

		if !cert.Payload.ScopeWithin(issuer.Payload.Scope) || !cert.Payload.OperationsWithin(issuer.Payload) {
			return models.Certificate{}, fmt.Errorf("%w: scope %q under issuer %q", ErrScopeViolation, cert.Payload.Scope, issuer.Payload.Scope)
		}

		visited = append(visited, cert)
		cert = issuer
	}

	return models.Certificate{}, fmt.Errorf("%w: no trusted root within %d hops", ErrUntrustedChain, maxChainHops)
}

// Authorize implements [CertificateService]: the chain must validate, and
// the leaf must cover both the partition key and the requested operation.
func (s *certificateService) Authorize(ctx context.Context, chain []models.Certificate, partitionKey, operation string) error {
	leaf, err := s.Validate(ctx, chain)
	if err != nil {
		return err
	}

	if !leaf.Payload.ScopeContains(partitionKey) {
		return fmt.Errorf("%w: partition %q outside scope %q", ErrScopeViolation, partitionKey, leaf.Payload.Scope)
	}
	if !leaf.Payload.Allows(operation) {
		return fmt.Errorf("%w: operation %q not delegated", ErrScopeViolation, operation)
	}

	return nil
}

// Trust implements [CertificateService]. Only self-signed certificates can
// enter the trust store; intermediate certificates derive trust from their
// root.
func (s *certificateService) Trust(ctx context.Context, signature string) error {
	cert, err := s.certs.GetCertificate(ctx, signature)
	if err != nil {
		return err
	}

	if !cert.IsSelfSigned() {
		return fmt.Errorf("%w: only self-signed certificates can be trusted directly", ErrInvalidDataProvided)
	}

	return s.certs.MarkTrusted(ctx, signature)
}

// Get implements [CertificateService].
func (s *certificateService) Get(ctx context.Context, signature string) (models.Certificate, error) {
	return s.certs.GetCertificate(ctx, signature)
}

// sign produces a certificate over the canonical payload encoding, signed by
// the local key. IssuerSignature is left for the caller to fill in.
func (s *certificateService) sign(payload models.CertificatePayload) (models.Certificate, error) {
	serialized, err := json.Marshal(payload)
	if err != nil {
		return models.Certificate{}, fmt.Errorf("encode certificate payload: %w", err)
	}

	signature := hex.EncodeToString(s.keys.Sign(serialized))

	return models.Certificate{
		Signature:  signature,
		Payload:    payload,
		Serialized: json.RawMessage(serialized),
	}, nil
}

func (s *certificateService) verifySignature(cert models.Certificate, publicKeyHex string) error {
	signature, err := hex.DecodeString(cert.Signature)
	if err != nil {
		return fmt.Errorf("%w: malformed signature encoding", ErrBadSignature)
	}

	if !s.keys.Verify(cert.Serialized, signature, publicKeyHex) {
		return fmt.Errorf("%w: certificate %s", ErrBadSignature, shortSignature(cert.Signature))
	}

	return nil
}

// resolveIssuer finds the issuer certificate in the presented chain, falling
// back to the local store. Its payload is re-decoded from the signed bytes
// before use.
func (s *certificateService) resolveIssuer(ctx context.Context, signature string, presented map[string]models.Certificate) (models.Certificate, error) {
	if cert, ok := presented[signature]; ok {
		return decodePayload(cert)
	}

	cert, err := s.certs.GetCertificate(ctx, signature)
	if errors.Is(err, store.ErrCertificateNotFound) {
		return models.Certificate{}, fmt.Errorf("%w: unknown issuer %s", ErrUntrustedChain, shortSignature(signature))
	}
	if err != nil {
		return models.Certificate{}, err
	}

	return decodePayload(cert)
}

// decodePayload re-derives Payload from the signed Serialized bytes.
func decodePayload(cert models.Certificate) (models.Certificate, error) {
	if len(cert.Serialized) == 0 {
		return models.Certificate{}, fmt.Errorf("%w: certificate without serialized payload", ErrInvalidDataProvided)
	}

	var payload models.CertificatePayload
	if err := json.Unmarshal(cert.Serialized, &payload); err != nil {
		return models.Certificate{}, fmt.Errorf("%w: undecodable certificate payload", ErrInvalidDataProvided)
	}

	cert.Payload = payload
	return cert, nil
}

func shortSignature(signature string) string {
	if len(signature) > 12 {
		return signature[:12]
	}
	return signature
}
