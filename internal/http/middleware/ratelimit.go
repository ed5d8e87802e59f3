package middleware

import (
	"net/http"
	"sync"
	"time"
)

// IPLimiter throttles requests per client IP with a token bucket. It guards
// the public forms (bookings, contact, chat) against scripted abuse.
type IPLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     float64
	burst    float64
	maxIdle  time.Duration
	now      func() time.Time
}

type visitor struct {
	tokens float64
	seen   time.Time
}

// NewIPLimiter creates a limiter refilling rate tokens/sec up to burst per IP.
func NewIPLimiter(rate float64, burst int) *IPLimiter {
	return &IPLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		burst:    float64(burst),
		maxIdle:  10 * time.Minute,
		now:      time.Now,
	}
}

// Allow reports whether a request from ip may proceed, consuming a token.
func (l *IPLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evictLocked(now)

	v, ok := l.visitors[ip]
	if !ok {
		l.visitors[ip] = &visitor{tokens: l.burst - 1, seen: now}
		return true
	}

	v.tokens += now.Sub(v.seen).Seconds() * l.rate
	if v.tokens > l.burst {
		v.tokens = l.burst
	}
	v.seen = now

	if v.tokens < 1 {
		return false
	}
	v.tokens--
	return true
}

// evictLocked drops visitors idle past maxIdle. Only kicks in once the map
// grows, so the common case stays a single lookup.
func (l *IPLimiter) evictLocked(now time.Time) {
	if len(l.visitors) < 1024 {
		return
	}
	cutoff := now.Add(-l.maxIdle)
	for ip, v := range l.visitors {
		if v.seen.Before(cutoff) {
			delete(l.visitors, ip)
		}
	}
}

// Limit wraps next with l, rejecting over-budget requests with 429. Route
// groups that should share one budget pass the same limiter.
func Limit(l *IPLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			// Prefer X-Real-Ip set by chi's RealIP middleware.
			if xri := r.Header.Get("X-Real-Ip"); xri != "" {
				ip = xri
			}
			if !l.Allow(ip) {
				w.Header().Set("Retry-After", "1")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"success":false,"message":"יותר מדי בקשות. נא לנסות שוב בעוד רגע."}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit is Limit with a limiter of its own.
func RateLimit(rate float64, burst int) func(http.Handler) http.Handler {
	return Limit(NewIPLimiter(rate, burst))
}
