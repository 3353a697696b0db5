package service

import "sync"

// counterAllocator hands out the local instance's per-save sequence numbers.
// Counters are a Lamport-style sequence, not wall-clock time: they only ever
// grow, and the allocator is seeded from the highest counter already
// persisted so a restart never reuses a value.
type counterAllocator struct {
	mu   sync.Mutex
	last int64
}

func newCounterAllocator(seed int64) *counterAllocator {
	return &counterAllocator{last: seed}
}

// Next returns the next counter value.
func (a *counterAllocator) Next() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.last++
	return a.last
}
