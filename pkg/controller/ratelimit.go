package controller

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"loanchecker/pkg/logger"
	"loanchecker/pkg/metrics"

	"go.uber.org/zap"
)

const (
	bucketIdleTimeout = time.Hour
	cleanupInterval   = 30 * time.Minute
)

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// RateLimiter is a per-client fixed window token bucket: every client gets
// capacity tokens, refilled in full once per refill period.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	refill   time.Duration
	clients  map[string]*clientBucket
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter and starts its idle bucket cleanup. Call
// Stop to release it.
func NewRateLimiter(capacity int, refill time.Duration) *RateLimiter {
	rl := newRateLimiter(capacity, refill, time.Now)
	go rl.cleanupLoop()

	return rl
}

func newRateLimiter(capacity int, refill time.Duration, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		capacity: capacity,
		refill:   refill,
		clients:  make(map[string]*clientBucket),
		now:      now,
		stop:     make(chan struct{}),
	}
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for client, bucket := range rl.clients {
		if now.Sub(bucket.lastRefill) > bucketIdleTimeout {
			delete(rl.clients, client)
		}
	}
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Allow takes a token from client's bucket and reports whether one was left.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	bucket, ok := rl.clients[client]
	if !ok {
		rl.clients[client] = &clientBucket{tokens: rl.capacity - 1, lastRefill: now}

		return rl.capacity > 0
	}

	if now.Sub(bucket.lastRefill) >= rl.refill {
		bucket.tokens = rl.capacity
		bucket.lastRefill = now
	}
	if bucket.tokens <= 0 {
		return false
	}
	bucket.tokens--

	return true
}

// WithRateLimit rejects requests with 429 once a client exhausts its bucket.
// Clients are identified by GetClientIP. A nil limiter disables limiting.
func WithRateLimit(limiter *RateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := GetClientIP(r)
		if !limiter.Allow(client) {
			metrics.RateLimited.Inc()
			logger.Warn(r.Context(), "rate limit exceeded", zap.String("client_ip", client))

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(limiter.refill.Round(time.Second).Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))

			return
		}

		next.ServeHTTP(w, r)
	})
}
