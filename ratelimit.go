package tracks

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var ErrInvalidRateLimit = errors.New("invalid rate limit")

// RateLimitConfig allows Requests per Window for every key. KeyFunc defaults
// to the client IP.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(r *http.Request) string
}

// A visitor is the token bucket of one key and when it last asked.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	config   RateLimitConfig
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

func newRateLimiter(config RateLimitConfig) (*rateLimiter, error) {
	if config.Requests <= 0 || config.Window <= 0 {
		return nil, fmt.Errorf("%w: %d requests per %s", ErrInvalidRateLimit, config.Requests, config.Window)
	}
	if config.KeyFunc == nil {
		config.KeyFunc = clientIP
	}
	return &rateLimiter{
		config:   config,
		interval: config.Window / time.Duration(config.Requests),
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}, nil
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// allow takes a token for key. It returns the tokens left, or how long to
// wait for the next one when none are left.
func (l *rateLimiter) allow(key string) (bool, int, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(l.interval), l.config.Requests)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	if v.limiter.AllowN(now, 1) {
		return true, int(v.limiter.TokensAt(now)), 0
	}

	missing := 1 - v.limiter.TokensAt(now)
	return false, 0, time.Duration(missing * float64(l.interval))
}

// prune forgets keys idle for a whole window. Their buckets are full again,
// so a fresh limiter behaves the same.
func (l *rateLimiter) prune(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= l.config.Window {
			delete(l.visitors, key)
		}
	}
}

// RateLimit rejects requests over the limit with 429 Too Many Requests.
// A config without positive Requests and Window fails when the handler is
// built.
func RateLimit(config RateLimitConfig) Middleware {
	limiter, err := newRateLimiter(config)

	return func(next http.Handler) (http.Handler, error) {
		if err != nil {
			return nil, err
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining, retryAfter := limiter.allow(limiter.config.KeyFunc(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.config.Requests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		}), nil
	}
}
