package middleware

import (
	"math"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// evictThreshold bounds the key map; stale windows are swept inline once
// the map grows past it.
const evictThreshold = 10000

type window struct {
	count    int
	resetsAt time.Time
}

// RateLimiter is a per-key fixed-window counter. Window state resets
// lazily on the first check after expiry. Safe for concurrent use.
type RateLimiter struct {
	mu          sync.Mutex
	windows     map[string]*window
	windowSize  time.Duration
	maxRequests int
	now         func() time.Time
}

func NewRateLimiter(windowSize time.Duration, maxRequests int) *RateLimiter {
	return &RateLimiter{
		windows:     make(map[string]*window),
		windowSize:  windowSize,
		maxRequests: maxRequests,
		now:         time.Now,
	}
}

// Check admits or denies one request for the key. On deny it returns the
// whole seconds until the key's window resets (at least 1).
func (r *RateLimiter) Check(key string) (allowed bool, retryAfter int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if len(r.windows) > evictThreshold {
		r.evictStale(now)
	}

	w, ok := r.windows[key]
	if !ok || now.After(w.resetsAt) {
		r.windows[key] = &window{count: 1, resetsAt: now.Add(r.windowSize)}
		return true, 0
	}

	if w.count >= r.maxRequests {
		secs := int(math.Ceil(w.resetsAt.Sub(now).Seconds()))
		if secs < 1 {
			secs = 1
		}
		return false, secs
	}
	w.count++
	return true, 0
}

func (r *RateLimiter) evictStale(now time.Time) {
	for key, w := range r.windows {
		if now.After(w.resetsAt) {
			delete(r.windows, key)
		}
	}
}

// Limit is the Fiber middleware wrapper, keyed by caller IP.
func Limit(limiter *RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, retryAfter := limiter.Check(c.IP())
		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status":     fiber.StatusTooManyRequests,
				"message":    "too many requests",
				"retryAfter": retryAfter,
			})
		}
		return c.Next()
	}
}
