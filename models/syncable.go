package models

// Syncable is implemented by every entity type that participates in
// replication. The sync engine is generic over this interface and never
// depends on concrete entity types.
type Syncable interface {
	// SyncID returns the globally unique, immutable identifier assigned to
	// the entity at creation time. It is stable across devices and never
	// derived from storage position.
	SyncID() string

	// ModelName returns the registered type name of the entity. It is
	// embedded into every serialized payload as the "model" type tag and is
	// required for correct deserialization.
	ModelName() string

	// PartitionKeys returns the partition(s) the entity belongs to, computed
	// from its current field values. Partitions scope both authorization and
	// incremental transfer filtering. Returning no keys is a programming
	// error surfaced at registration time, never at sync time.
	PartitionKeys() []string
}

// Base is embedded by syncable entity types. It carries the immutable
// identity and the dirty bit tracked by the replication engine.
//
// The dirty bit is set on every mutating write unless the writer explicitly
// opts out (sync-internal writes). Application code never clears it; only the
// sync subsystem does, after the change has been serialized into the store.
type Base struct {
	ID    string `json:"id" sync:"id"`
	Dirty bool   `json:"-" sync:"-"`
}

// SyncID implements the identity half of [Syncable].
func (b *Base) SyncID() string { return b.ID }

// MarkDirty flags the entity as having local changes not yet serialized.
func (b *Base) MarkDirty() { b.Dirty = true }

// ClearDirty resets the dirty bit. Reserved for the sync subsystem; clearing
// it from application code silently drops changes from the next sync pass.
func (b *Base) ClearDirty() { b.Dirty = false }
