package utils

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// tombstoneDomain is mixed into the digest of a deleted record so that a
// tombstone never shares a version tag with the live record it replaces,
// even though the serialized payload bytes are unchanged by deletion.
var tombstoneDomain = []byte("\x00tombstone")

// VersionTag computes the content-derived version tag for a record: the
// hex-encoded BLAKE2b-256 digest of the serialized payload, with the
// tombstone flag folded into the digest input.
//
// The tag is a pure function of (payload, deleted), so two instances
// serializing an identical record state produce the same version
// independently. Serialized payloads are built from sorted-key JSON, which
// keeps the input — and hence the tag — deterministic.
func VersionTag(payload []byte, deleted bool) string {
	h, _ := blake2b.New256(nil)
	h.Write(payload)
	if deleted {
		h.Write(tombstoneDomain)
	}
	return hex.EncodeToString(h.Sum(nil))
}
