package sitepress

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4/middleware"
)

// RequestLimiter is a per-client sliding-window rate limiter. It satisfies
// Echo's middleware.RateLimiterStore.
type RequestLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	done   chan struct{}
	once   sync.Once
}

var _ middleware.RateLimiterStore = (*RequestLimiter)(nil)

// NewRequestLimiter creates a RequestLimiter that allows max requests per window.
// Call Close to stop its cleanup goroutine.
func NewRequestLimiter(max int, window time.Duration) *RequestLimiter {
	l := &RequestLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		done:   make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *RequestLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
		}
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for key, hits := range l.hits {
			kept := prune(hits, cutoff)
			if len(kept) == 0 {
				delete(l.hits, key)
			} else {
				l.hits[key] = kept
			}
		}
		l.mu.Unlock()
	}
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// Allow reports whether key is under the limit and records the request if so.
func (l *RequestLimiter) Allow(key string) (bool, error) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := prune(l.hits[key], now.Add(-l.window))
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false, nil
	}
	l.hits[key] = append(kept, now)
	return true, nil
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (l *RequestLimiter) Close() {
	l.once.Do(func() { close(l.done) })
}
