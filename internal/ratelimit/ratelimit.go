package ratelimit

import (
	"sync"
	"time"

	"github.com/Fardeen26/flashfeed/pkg/config"
	"golang.org/x/time/rate"
)

// Limiter decides whether a caller may perform another write.
type Limiter interface {
	Allow(key string) bool
}

// InMemoryLimiter keeps one token bucket per key in memory.
type InMemoryLimiter struct {
	buckets map[string]*rate.Limiter
	mu      sync.Mutex
	r       rate.Limit
	b       int
}

// NewInMemoryLimiter allows requests per duration with the given burst.
// NewInMemoryLimiter(10, 10*time.Second, 20) refills one token per second.
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	if requests <= 0 {
		requests = 1
	}
	return &InMemoryLimiter{
		buckets: make(map[string]*rate.Limiter),
		r:       rate.Every(per / time.Duration(requests)),
		b:       burst,
	}
}

// New builds the process limiter from RATE_LIMIT_* settings.
func New(cfg *config.Config) Limiter {
	return NewInMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Per, cfg.RateLimit.Burst)
}

func (l *InMemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.buckets[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.buckets[key] = limiter
	}

	return limiter.Allow()
}
