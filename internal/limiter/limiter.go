package limiter

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// idleTTL is how long an unused visitor bucket is kept.
const idleTTL = 30 * time.Minute

type bucket struct {
	l        *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per key (the visitor id).
type Limiter struct {
	logger *zap.Logger
	limit  rate.Limit
	burst  int

	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func New(logger *zap.Logger, limit float64, burst int) *Limiter {
	return &Limiter{
		logger:  logger,
		limit:   rate.Limit(limit),
		burst:   burst,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Limit reports whether key has exceeded its rate.
func (l *Limiter) Limit(key string) bool {
	l.mu.Lock()
	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{l: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	allowed := b.l.AllowN(now, 1)
	l.mu.Unlock()

	l.logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Bool("allowed", allowed),
		zap.Float64("limit", float64(l.limit)),
		zap.Int("burst", l.burst),
	)
	return !allowed
}

// Sweep drops buckets idle for longer than idleTTL and returns how many
// were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idleTTL)
	removed := 0
	for k, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, k)
			removed++
		}
	}
	return removed
}

// Run sweeps idle buckets every interval until stop is closed.
func (l *Limiter) Run(interval time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if n := l.Sweep(); n > 0 {
				l.logger.Debug("Swept idle rate limit buckets", zap.Int("removed", n))
			}
		case <-stop:
			return
		}
	}
}
