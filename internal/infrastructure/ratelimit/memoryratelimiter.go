package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/cloudcare/helpdesk/internal/shared/biztime"
)

// sweepInterval is how often Allow drops keys whose window has emptied.
const sweepInterval = time.Minute

type memoryWindow struct {
	hits   []time.Time
	window time.Duration
}

// MemoryRateLimiter is a per-process sliding window used when Redis is not
// configured. Counts are not shared between instances.
type MemoryRateLimiter struct {
	mu        sync.Mutex
	keys      map[string]*memoryWindow
	lastSweep time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{keys: make(map[string]*memoryWindow)}
}

var _ RateLimiter = (*MemoryRateLimiter)(nil)

func (l *MemoryRateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (Result, error) {
	now := biztime.NowUTC()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	w, ok := l.keys[key]
	if !ok {
		w = &memoryWindow{}
		l.keys[key] = w
	}
	w.window = window
	w.hits = trimBefore(w.hits, now.Add(-window))

	count := int64(len(w.hits))
	w.hits = append(w.hits, now)

	return Result{
		Allowed:   count < int64(limit),
		Limit:     limit,
		Remaining: remaining(limit, count+1),
		ResetAt:   w.hits[0].Add(window),
	}, nil
}

func (l *MemoryRateLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.keys, key)
	return nil
}

// Len is the number of keys currently tracked.
func (l *MemoryRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}

// sweep must be called with mu held.
func (l *MemoryRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	for key, w := range l.keys {
		if len(w.hits) == 0 || !w.hits[len(w.hits)-1].After(now.Add(-w.window)) {
			delete(l.keys, key)
		}
	}
}

func trimBefore(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, at := range hits {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}
	return kept
}
