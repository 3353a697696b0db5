package models

// CounterMap maps an instance identifier to the highest counter value from
// that instance already folded into a record's current state. It is the
// per-record causal-knowledge vector: comparing two maps determines, without
// consulting history, whether one version already contains the other.
type CounterMap map[string]int64

// Get returns the counter recorded for instanceID, or 0 when the map has
// never seen a contribution from that instance.
func (m CounterMap) Get(instanceID string) int64 {
	return m[instanceID]
}

// Dominates reports whether m contains everything other does: every entry of
// other is less than or equal to the corresponding entry of m. A nil or empty
// other is dominated by any map.
func (m CounterMap) Dominates(other CounterMap) bool {
	for instanceID, counter := range other {
		if m[instanceID] < counter {
			return false
		}
	}
	return true
}

// Concurrent reports whether neither map dominates the other, i.e. the two
// versions carry divergent contributions and a genuine conflict exists.
func (m CounterMap) Concurrent(other CounterMap) bool {
	return !m.Dominates(other) && !other.Dominates(m)
}

// Merge returns a new map holding the key-wise maximum of m and other.
// Neither input is modified; entries only ever grow.
func (m CounterMap) Merge(other CounterMap) CounterMap {
	merged := make(CounterMap, len(m)+len(other))
	for instanceID, counter := range m {
		merged[instanceID] = counter
	}
	for instanceID, counter := range other {
		if counter > merged[instanceID] {
			merged[instanceID] = counter
		}
	}
	return merged
}

// Copy returns an independent copy of m. Copying a nil map yields an empty,
// non-nil map so callers can assign into the result directly.
func (m CounterMap) Copy() CounterMap {
	copied := make(CounterMap, len(m))
	for instanceID, counter := range m {
		copied[instanceID] = counter
	}
	return copied
}

// Equal reports whether m and other record exactly the same counters.
// Absent entries and zero entries are considered equal.
func (m CounterMap) Equal(other CounterMap) bool {
	return m.Dominates(other) && other.Dominates(m)
}
