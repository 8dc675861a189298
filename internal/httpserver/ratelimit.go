// internal/httpserver/ratelimit.go
//
// Per-IP token bucket in front of the guess endpoints. Humans play well
// under the budget; scripted dictionary sweeps hit 429s.

package httpserver

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// ipLimiter hands out one token bucket per client IP.
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	rate    rate.Limit
	burst   int
}

func newIPLimiter(perMinute float64, burst int) *ipLimiter {
	if perMinute <= 0 {
		perMinute = 120
	}
	if burst <= 0 {
		burst = 20
	}
	return &ipLimiter{
		buckets: make(map[string]*rate.Limiter),
		rate:    rate.Limit(perMinute / 60.0),
		burst:   burst,
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	// crude cap so the bucket map cannot grow without bound
	if len(l.buckets) > 8192 {
		l.buckets = make(map[string]*rate.Limiter)
	}
	b, ok := l.buckets[ip]
	if !ok {
		b = rate.NewLimiter(l.rate, l.burst)
		l.buckets[ip] = b
	}
	return b
}

// guessRateLimit rejects clients submitting guesses faster than the
// configured budget.
func (s *Server) guessRateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.limiter.get(clientIP(r)).Allow() {
				http.Error(w, `{"error":"rate_limited"}`, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr. The RealIP middleware has
// already folded X-Forwarded-For into RemoteAddr when present.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
