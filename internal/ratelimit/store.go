// Package ratelimit throttles contact submissions per client with an
// in-memory sliding-window log.
//
// Each client key maps to the timestamps of its admitted requests. A request
// is admitted only when fewer than limit timestamps fall inside the trailing
// window, and only admitted requests are recorded, so a client that keeps
// retrying while blocked does not extend its own block.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/aeternum/contact/internal/logging"
)

const (
	// DefaultWindow is the trailing interval over which requests are counted.
	DefaultWindow = 60 * time.Second

	// DefaultLimit is the number of admitted requests allowed per window.
	DefaultLimit = 5
)

// Decision is the outcome of a single CheckAndRecord call.
type Decision struct {
	Allowed bool

	// Remaining is how many more requests the key may make in the current
	// window after this one.
	Remaining int

	// RetryAfter is set on rejection: the time until the oldest in-window
	// timestamp leaves the window.
	RetryAfter time.Duration
}

// Store decides and records admissions. Implementations must make the
// decision and the record a single atomic step per key.
type Store interface {
	CheckAndRecord(key string, now time.Time) Decision
}

// SlidingWindow is the process-local Store. Safe for concurrent use.
type SlidingWindow struct {
	window time.Duration
	limit  int

	mu      sync.Mutex
	entries map[string][]time.Time
}

// NewSlidingWindow creates a limiter admitting at most limit requests per key
// within any trailing window.
func NewSlidingWindow(window time.Duration, limit int) *SlidingWindow {
	return &SlidingWindow{
		window:  window,
		limit:   limit,
		entries: make(map[string][]time.Time),
	}
}

// NewDefault creates a limiter with DefaultWindow and DefaultLimit.
func NewDefault() *SlidingWindow {
	return NewSlidingWindow(DefaultWindow, DefaultLimit)
}

// CheckAndRecord prunes the key's expired timestamps, then either rejects
// (recording nothing) or appends now and admits.
func (s *SlidingWindow) CheckAndRecord(key string, now time.Time) Decision {
	windowStart := now.Add(-s.window)

	s.mu.Lock()
	defer s.mu.Unlock()

	recent := prune(s.entries[key], windowStart)

	if len(recent) >= s.limit {
		// Keep the pruned slice so stale entries do not pile up for blocked keys
		s.entries[key] = recent
		retry := recent[0].Sub(windowStart)
		if retry < 0 {
			retry = 0
		}
		return Decision{Allowed: false, Remaining: 0, RetryAfter: retry}
	}

	recent = append(recent, now)
	s.entries[key] = recent

	return Decision{Allowed: true, Remaining: s.limit - len(recent)}
}

// prune drops timestamps strictly older than windowStart. Timestamps are
// appended in call order, so the kept ones form a suffix. A timestamp equal
// to windowStart is still in the window.
func prune(ts []time.Time, windowStart time.Time) []time.Time {
	i := 0
	for i < len(ts) && ts[i].Before(windowStart) {
		i++
	}
	if i == 0 {
		return ts
	}
	kept := make([]time.Time, len(ts)-i)
	copy(kept, ts[i:])
	return kept
}

// Sweep evicts keys whose newest timestamp is outside the window and returns
// the number of keys removed.
func (s *SlidingWindow) Sweep(now time.Time) int {
	windowStart := now.Add(-s.window)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, ts := range s.entries {
		if len(ts) == 0 || ts[len(ts)-1].Before(windowStart) {
			delete(s.entries, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of tracked keys.
func (s *SlidingWindow) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartJanitor runs Sweep every interval until ctx is cancelled. The
// returned channel is closed once the goroutine has exited.
func (s *SlidingWindow) StartJanitor(ctx context.Context, every time.Duration) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(every)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logging.Debug("Rate limit janitor stopped")
				return
			case now := <-ticker.C:
				if n := s.Sweep(now); n > 0 {
					logging.Debug("Rate limit janitor evicted %d idle clients (%d tracked)", n, s.Len())
				}
			}
		}
	}()

	return done
}
