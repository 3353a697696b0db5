package service

import (
	"github.com/MKhiriev/go-peer-sync/internal/registry"
	"github.com/MKhiriev/go-peer-sync/models"
)

// mergeOutcome classifies how an incoming record version related to the local
// one.
type mergeOutcome int

const (
	outcomeCreated mergeOutcome = iota
	outcomeFastForwarded
	outcomeDiscarded
	outcomeConflict
)

// mergeRecords folds an incoming record version into the local one. The
// counter maps decide the relationship:
//
//   - unknown locally                  → adopt incoming (created)
//   - incoming dominates local         → adopt incoming (fast-forward)
//   - local dominates incoming         → keep local (discard)
//   - neither dominates (concurrent)   → resolve through the model's merge
//     hook (conflict)
//
// Receiving a version already known locally falls under "local dominates" and
// is a discard: redelivery is a no-op.
//
// After a conflict the result carries the key-wise maximum of both counter
// maps, and LastSavedCounter is re-pinned to the merged map's entry for
// LastSavedInstance so the Counters[LastSavedInstance] == LastSavedCounter
// invariant survives resolution. The losing side's version tag is appended to
// the winner's history so lineage reflects both ancestors.
func (s *syncService) mergeRecords(current models.StoreRecord, found bool, incoming models.StoreRecord) (models.StoreRecord, mergeOutcome) {
	if !found {
		return incoming, outcomeCreated
	}

	if current.Counters.Dominates(incoming.Counters) {
		return current, outcomeDiscarded
	}

	if incoming.Counters.Dominates(current.Counters) {
		return incoming, outcomeFastForwarded
	}

	hook := s.mergeHookFor(incoming)
	resolved := hook(current, incoming)

	loser := current
	if resolved.Version == current.Version {
		loser = incoming
	}

	resolved.Counters = current.Counters.Merge(incoming.Counters)
	resolved.LastSavedCounter = resolved.Counters.Get(resolved.LastSavedInstance)
	resolved.History = appendVersion(resolved.History, loser.Version)

	return resolved, outcomeConflict
}

// mergeHookFor resolves the merge hook through the record's payload type tag.
// A payload whose tag cannot be read still merges: the default policy needs
// no type information.
func (s *syncService) mergeHookFor(record models.StoreRecord) registry.MergeFunc {
	model, err := registry.ModelOf(record.Serialized)
	if err != nil {
		s.logger.Warn().Err(err).Str("record_id", record.ID).Msg("record payload has no readable type tag")
		return registry.DefaultMerge
	}

	return s.registry.MergeHook(model)
}

func appendVersion(history []string, version string) []string {
	for _, v := range history {
		if v == version {
			return history
		}
	}
	return append(append([]string{}, history...), version)
}
