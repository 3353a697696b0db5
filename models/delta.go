package models

// DeltaRequest asks a peer for every record it holds, matching Filter, whose
// contribution from InstanceID is newer than SinceCounter.
type DeltaRequest struct {
	InstanceID   string `json:"instance_id"`
	Filter       string `json:"filter"`
	SinceCounter int64  `json:"since_counter"`
}

// Delta is a batch of store records pushed by (or pulled from) the instance
// identified by InstanceID, scoped to Filter. Application of a delta is
// all-or-nothing per (InstanceID, Filter) key.
type Delta struct {
	InstanceID string        `json:"instance_id"`
	Filter     string        `json:"filter"`
	Records    []StoreRecord `json:"records"`
	Length     int           `json:"length"`
}

// DeltaResponse wraps the records returned for a DeltaRequest.
type DeltaResponse struct {
	Records []StoreRecord `json:"records"`
	Length  int           `json:"length"`
}

// MergeReport summarizes how an applied delta was folded into local state.
// Receiving the same record version twice is a no-op and counts as
// discarded.
type MergeReport struct {
	// Created counts records previously unknown locally.
	Created int `json:"created"`
	// FastForwarded counts records where the incoming version dominated the
	// local one and was adopted wholesale.
	FastForwarded int `json:"fast_forwarded"`
	// Discarded counts records already dominated by local state.
	Discarded int `json:"discarded"`
	// Conflicts counts concurrent edits resolved through the merge hook.
	Conflicts int `json:"conflicts"`
	// Rejected counts records refused before merge (authorization scope).
	Rejected int `json:"rejected"`
}

// Applied returns the number of records that changed local state.
func (r MergeReport) Applied() int {
	return r.Created + r.FastForwarded + r.Conflicts
}

// WatermarkResponse reports a single high-water-mark value.
type WatermarkResponse struct {
	InstanceID string `json:"instance_id"`
	Filter     string `json:"filter"`
	MaxCounter int64  `json:"max_counter"`
}

// SessionRequest opens a sync session: the caller presents its certificate
// chain, leaf first.
type SessionRequest struct {
	Certificates []Certificate `json:"certificates"`
}

// SessionResponse returns the session token together with the responder's
// own instance identity, so the caller can key its watermarks.
type SessionResponse struct {
	Token      string `json:"token"`
	InstanceID string `json:"instance_id"`
}
