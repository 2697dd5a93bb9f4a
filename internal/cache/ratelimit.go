package cache

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/DrawDrewpf/FullMart-sub000/internal/response"
)

type window struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window request counter. Each key gets its own window;
// once the window's reset time passes the counter restarts from zero.
type Limiter struct {
	mu      sync.Mutex
	max     int
	period  time.Duration
	windows map[string]window
}

func NewLimiter(max int, period time.Duration) *Limiter {
	return &Limiter{max: max, period: period, windows: make(map[string]window)}
}

// Allow counts one request against the key's current window. It reports
// whether the request is within budget and, when it is not, how long until
// the window resets.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		l.windows[key] = window{count: 1, resetAt: now.Add(l.period)}
		return true, 0
	}
	if w.count >= l.max {
		return false, time.Until(w.resetAt)
	}
	w.count++
	l.windows[key] = w
	return true, 0
}

// Decrement refunds one request in the key's current window. Auth endpoints
// use it so only failed attempts consume budget.
func (l *Limiter) Decrement(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.windows[key]
	if !ok || time.Now().After(w.resetAt) {
		return
	}
	if w.count > 0 {
		w.count--
	}
	l.windows[key] = w
}

// RateLimit wraps a limiter as fiber middleware. Requests over budget get a
// 429 with the seconds remaining until the window resets.
func RateLimit(l *Limiter, keyFunc func(*fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, retryAfter := l.Allow(keyFunc(c))
		if !ok {
			secs := int(retryAfter.Seconds()) + 1
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
			return response.FailWith(c, fiber.StatusTooManyRequests,
				"too many requests", fiber.Map{"retryAfter": secs})
		}
		return c.Next()
	}
}

// KeyByIP identifies callers by remote address.
func KeyByIP(c *fiber.Ctx) string {
	return c.IP()
}

// KeyByIPAndEmail identifies login attempts by caller address plus the email
// in the request body, so one address cannot burn another account's budget.
func KeyByIPAndEmail(c *fiber.Ctx) string {
	var peek struct {
		Email string `json:"email"`
	}
	_ = json.Unmarshal(c.Body(), &peek)
	return c.IP() + ":" + peek.Email
}

// LoginKey builds the same key as KeyByIPAndEmail from explicit values, for
// handlers that refund budget after a successful authentication.
func LoginKey(ip, email string) string {
	return ip + ":" + email
}
