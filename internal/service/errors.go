package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpired = errors.New("token is expired")

	// ErrWatermarkRegression is returned when a watermark advance would move
	// a high-water mark backwards.
	ErrWatermarkRegression = errors.New("watermark may only advance")

	// ErrBadSignature indicates a certificate whose signature does not verify
	// against its issuer's public key.
	ErrBadSignature = errors.New("certificate signature does not verify")

	// ErrUntrustedChain indicates a certificate chain whose root is not in
	// the local trust store.
	ErrUntrustedChain = errors.New("certificate chain does not reach a trusted root")

	// ErrScopeViolation indicates a certificate granting broader scope or
	// operations than its issuer holds.
	ErrScopeViolation = errors.New("certificate exceeds issuer authority")

	// ErrNotCertificateHolder indicates an attempt to issue from a
	// certificate whose key the local instance does not hold.
	ErrNotCertificateHolder = errors.New("local key does not match certificate holder")
)
