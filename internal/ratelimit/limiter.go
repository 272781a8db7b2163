package ratelimit

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// Limit is a token bucket definition.
type Limit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

func DefaultLimit() Limit {
	return Limit{
		RequestsPerSecond: 5,
		Burst:             10,
	}
}

// KeyedLimiter hands out one token bucket per key, creating buckets lazily
// from the default limit. Keys are case-insensitive.
type KeyedLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Limit
}

func New(defaults Limit) *KeyedLimiter {
	if defaults.RequestsPerSecond <= 0 || defaults.Burst <= 0 {
		defaults = DefaultLimit()
	}
	return &KeyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: defaults,
	}
}

func (l *KeyedLimiter) get(key string) *rate.Limiter {
	key = strings.ToLower(key)

	l.mu.RLock()
	limiter, ok := l.limiters[key]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, ok = l.limiters[key]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(rate.Limit(l.defaults.RequestsPerSecond), l.defaults.Burst)
	l.limiters[key] = limiter
	return limiter
}

// Configure overrides the bucket for key. An incomplete limit falls back to
// the defaults.
func (l *KeyedLimiter) Configure(key string, limit Limit) {
	if limit.RequestsPerSecond <= 0 || limit.Burst <= 0 {
		limit = l.defaults
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[strings.ToLower(key)] = rate.NewLimiter(rate.Limit(limit.RequestsPerSecond), limit.Burst)
}

func (l *KeyedLimiter) Wait(ctx context.Context, key string) error {
	return l.get(key).Wait(ctx)
}
