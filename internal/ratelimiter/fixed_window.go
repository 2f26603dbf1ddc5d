package ratelimiter

import (
	"sync"
	"time"
)

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

// FixedWindowRateLimiter counts requests per key inside fixed windows.
// Windows are tracked per key and pruned lazily on access, so the limiter
// needs no background goroutine.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	span    time.Duration
}

type window struct {
	start time.Time
	count int
}

func NewFixedWindowLimiter(limit int, span time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		span:    span,
	}
}

// Allow reports whether the key may proceed. When denied, the second return
// value is how long the caller should wait before retrying.
func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.span {
		rl.windows[key] = &window{start: now, count: 1}
		rl.pruneLocked(now)
		return true, 0
	}

	if w.count < rl.limit {
		w.count++
		return true, 0
	}

	return false, rl.span - now.Sub(w.start)
}

// pruneLocked drops expired windows so the map does not grow with every
// client ever seen. Caller holds the lock.
func (rl *FixedWindowRateLimiter) pruneLocked(now time.Time) {
	for key, w := range rl.windows {
		if now.Sub(w.start) >= rl.span {
			delete(rl.windows, key)
		}
	}
}
