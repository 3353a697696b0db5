// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package registry maintains the explicit mapping from model names to entity
// type behavior: a factory, the serialization field set, and the optional
// merge-conflict override.
//
// The registry is an ordinary object constructed at startup and passed by
// reference into the sync engine — there is no process-wide implicit lookup.
// The sync engine is generic over [models.Syncable]; the registry is the only
// place concrete entity types are known.
package registry

import (
	"fmt"
	"sync"

	"github.com/MKhiriev/go-peer-sync/internal/logger"
	"github.com/MKhiriev/go-peer-sync/models"
)

// MergeFunc resolves a genuine conflict between two concurrent versions of
// the same record. It must be total: defined for every possible pair of
// versions, never failing. The sync engine fixes up the counter map of the
// result afterwards; the hook only chooses (or blends) payloads.
type MergeFunc func(current, incoming models.StoreRecord) models.StoreRecord

// DefaultMerge is the default conflict policy: the incoming version wins.
// This is a deliberately simple last-writer-style policy, not a derived
// invariant — entity types with richer semantics (counters, sets) register
// an override instead.
func DefaultMerge(current, incoming models.StoreRecord) models.StoreRecord {
	return incoming
}

// Registration describes one entity type.
type Registration struct {
	// New returns a fresh zero-valued instance of the entity type, used as
	// the deserialization target and for contract checks at registration.
	New func() models.Syncable

	// Merge optionally overrides [DefaultMerge] for this model.
	Merge MergeFunc
}

// Registry maps model names to their registrations. Safe for concurrent
// lookup; registration happens during startup wiring.
type Registry struct {
	logger *logger.Logger

	mu    sync.RWMutex
	types map[string]Registration
}

// New constructs an empty Registry.
func New(log *logger.Logger) *Registry {
	return &Registry{
		logger: log,
		types:  make(map[string]Registration),
	}
}

// Register adds an entity type to the registry.
//
// The prototype produced by reg.New is checked against the syncable
// contract: a non-empty model name and partition-key logic that yields at
// least one key for the zero value. A type missing either fails with
// [ErrNotImplemented] here, at startup, rather than during a sync pass.
func (r *Registry) Register(reg Registration) error {
	if reg.New == nil {
		return fmt.Errorf("%w: nil factory", ErrNotImplemented)
	}

	prototype := reg.New()
	if prototype == nil {
		return fmt.Errorf("%w: factory returned nil", ErrNotImplemented)
	}

	model := prototype.ModelName()
	if model == "" {
		return fmt.Errorf("%w: empty model name", ErrNotImplemented)
	}
	if len(prototype.PartitionKeys()) == 0 {
		return fmt.Errorf("%w: model %q returns no partition keys", ErrNotImplemented, model)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[model]; exists {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, model)
	}

	r.types[model] = reg
	r.logger.Debug().Str("model", model).Msg("registered syncable model")

	return nil
}

// Lookup returns the registration for model, or [ErrUnknownModel].
func (r *Registry) Lookup(model string) (Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.types[model]
	if !ok {
		return Registration{}, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}

	return reg, nil
}

// MergeHook returns the conflict-resolution hook for model. Unregistered
// models and registrations without an override fall back to [DefaultMerge],
// so the hook is always total.
func (r *Registry) MergeHook(model string) MergeFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if reg, ok := r.types[model]; ok && reg.Merge != nil {
		return reg.Merge
	}

	return DefaultMerge
}
