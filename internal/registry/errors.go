package registry

import "errors"

var (
	// ErrNotImplemented indicates an entity type that does not supply the
	// required syncable contract (model name, partition-key logic). Surfaced
	// at registration time so the defect is fatal at startup, never deferred
	// to a sync pass.
	ErrNotImplemented = errors.New("entity type does not implement the syncable contract")

	// ErrAlreadyRegistered indicates a duplicate model name registration.
	ErrAlreadyRegistered = errors.New("model name already registered")

	// ErrUnknownModel indicates a payload whose type tag names a model this
	// registry has never seen.
	ErrUnknownModel = errors.New("unknown model name")

	// ErrTypeMismatch indicates a payload whose type tag disagrees with the
	// deserialization target. The payload is rejected, never guessed at.
	ErrTypeMismatch = errors.New("payload type tag does not match target type")

	// ErrInvalidPayload indicates a payload that is not a JSON object or is
	// missing its type tag.
	ErrInvalidPayload = errors.New("invalid payload")
)
