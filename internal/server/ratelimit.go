package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ipLimiter throttles submissions per client IP. Idle entries are dropped
// after an hour so the map does not grow without bound.
type ipLimiter struct {
	mu      sync.Mutex
	perIP   map[string]*ipEntry
	limit   rate.Limit
	burst   int
	lastGC  time.Time
	nowFunc func() time.Time
}

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const ipEntryTTL = time.Hour

func newIPLimiter(rps float64, burst int) *ipLimiter {
	return &ipLimiter{
		perIP:   make(map[string]*ipEntry),
		limit:   rate.Limit(rps),
		burst:   burst,
		nowFunc: time.Now,
	}
}

// Allow reports whether a request from the given remote address may proceed.
func (l *ipLimiter) Allow(remoteAddr string) bool {
	ip, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		ip = remoteAddr
	}

	now := l.nowFunc()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastGC) > ipEntryTTL {
		for k, e := range l.perIP {
			if now.Sub(e.lastSeen) > ipEntryTTL {
				delete(l.perIP, k)
			}
		}
		l.lastGC = now
	}

	e, ok := l.perIP[ip]
	if !ok {
		e = &ipEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.perIP[ip] = e
	}
	e.lastSeen = now

	return e.limiter.Allow()
}

// middleware rejects over-limit requests with 429 before any body parsing.
func (l *ipLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(r.RemoteAddr) {
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"success": false,
				"error":   "too many requests, slow down",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
