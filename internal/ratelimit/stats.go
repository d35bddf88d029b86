package ratelimit

import "sync"

// Stats counts limiter decisions for the health endpoint.
type Stats struct {
	mu      sync.Mutex
	allowed uint64
	denied  uint64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Allowed uint64 `json:"allowed"`
	Denied  uint64 `json:"denied"`
}

// Observe records one decision. A nil Stats is a no-op.
func (s *Stats) Observe(d Decision) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.Allowed {
		s.allowed++
	} else {
		s.denied++
	}
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	if s == nil {
		return StatsSnapshot{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot{Allowed: s.allowed, Denied: s.denied}
}
