package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Keys are swept opportunistically once the map grows past this bound,
// pruning stale timestamps and dropping keys left empty. Housekeeping
// only; correctness never depends on it.
const defaultMaxKeys = 2000

// SlidingWindow is an in-memory, process-local sliding-window limiter.
// Each key holds the timestamps of its recent requests; a request is
// rejected, without being recorded, when the window already holds the
// maximum.
type SlidingWindow struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	maxKeys int
	entries map[string][]time.Time
	now     func() time.Time
}

func NewSlidingWindow(window time.Duration, maxRequests int) *SlidingWindow {
	// Defensive minimums: a zero window or zero budget would reject
	// everything or nothing meaningfully.
	if window < time.Second {
		window = time.Second
	}
	if maxRequests < 1 {
		maxRequests = 1
	}
	return &SlidingWindow{
		window:  window,
		max:     maxRequests,
		maxKeys: defaultMaxKeys,
		entries: make(map[string][]time.Time),
		now:     time.Now,
	}
}

func (l *SlidingWindow) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := pruneBefore(l.entries[key], cutoff)
	if len(recent) >= l.max {
		l.entries[key] = recent
		return false
	}

	l.entries[key] = append(recent, now)

	if len(l.entries) > l.maxKeys {
		l.sweep(cutoff)
	}
	return true
}

// sweep prunes every key and removes the ones left empty. Called with
// the lock held.
func (l *SlidingWindow) sweep(cutoff time.Time) {
	for key, stamps := range l.entries {
		recent := pruneBefore(stamps, cutoff)
		if len(recent) == 0 {
			delete(l.entries, key)
			continue
		}
		l.entries[key] = recent
	}
}

func pruneBefore(stamps []time.Time, cutoff time.Time) []time.Time {
	idx := 0
	for idx < len(stamps) && !stamps[idx].After(cutoff) {
		idx++
	}
	if idx == 0 {
		return stamps
	}
	return append([]time.Time(nil), stamps[idx:]...)
}
