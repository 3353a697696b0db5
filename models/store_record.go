package models

import "encoding/json"

// StoreRecord is the transferable wrapper around a syncable entity's payload.
// It is what actually moves between instances during a sync session.
//
// A StoreRecord is created on the first sync-relevant save of an entity and
// updated on every subsequent save or merge. It is never physically deleted:
// deletion is represented by the Deleted tombstone so that peers can
// propagate it.
type StoreRecord struct {
	// ID is the same identifier as the entity the record wraps.
	ID string `json:"id"`

	// Serialized is the encoded snapshot of the entity's editable fields,
	// including the "model" type tag.
	Serialized json.RawMessage `json:"serialized"`

	// Deleted marks the record as logically gone. The record itself persists
	// so the deletion reaches every peer. An undelete is a later version,
	// not a special case.
	Deleted bool `json:"deleted"`

	// Version is the content-derived tag identifying this exact payload
	// snapshot (BLAKE2b-256 of Serialized, hex encoded).
	Version string `json:"version"`

	// History lists the version tags that preceded Version, oldest first.
	// It is append-only: never rewritten, only extended.
	History []string `json:"history,omitempty"`

	// LastSavedInstance identifies the instance that produced this version.
	LastSavedInstance string `json:"last_saved_instance"`

	// LastSavedCounter is the per-instance sequence number assigned by
	// LastSavedInstance when it produced this version. A Lamport-style
	// counter, not wall-clock time.
	LastSavedCounter int64 `json:"last_saved_counter"`

	// Counters is the record max counter map (RMC).
	// Invariant after every save or merge:
	//   Counters[LastSavedInstance] == LastSavedCounter.
	Counters CounterMap `json:"counters"`

	// Partitions holds the partition keys computed from the entity at
	// serialization time, persisted so the store can answer
	// query-by-partition-filter without deserializing payloads.
	Partitions []string `json:"partitions,omitempty"`
}

// InPartition reports whether any of the record's partition keys falls under
// the given filter prefix. An empty filter matches every record.
func (r StoreRecord) InPartition(filter string) bool {
	if filter == "" {
		return true
	}
	for _, partition := range r.Partitions {
		if len(partition) >= len(filter) && partition[:len(filter)] == filter {
			return true
		}
	}
	return false
}
