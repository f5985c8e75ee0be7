// Package ratelimit implements the coarse admission gate applied to every
// inbound request. It is a fixed window with queueing slack: a bounded
// number of admits per window, plus a small burst allowance on top. One
// instance guards the whole service; it is constructed once at startup and
// passed to the router explicitly.
package ratelimit

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsRejected = promauto.NewCounter(prometheus.CounterOpts{
	Name: "nhl_requests_rate_limited_total",
	Help: "Total number of requests rejected by the rate limiter",
})

// Defaults used by the gateway.
const (
	DefaultPermitLimit = 120
	DefaultWindow      = time.Minute
	DefaultQueueLimit  = 10
)

// FixedWindow admits up to permitLimit+queueLimit requests per window.
// Admitted timestamps are kept in arrival order, so expiring old ones is a
// prefix trim. Trim, count and append happen under one mutex hold; the
// limiter would over-admit during races otherwise.
type FixedWindow struct {
	permitLimit int
	window      time.Duration
	queueLimit  int

	mu     sync.Mutex
	stamps []time.Time

	now func() time.Time
}

func NewFixedWindow(permitLimit int, window time.Duration, queueLimit int) *FixedWindow {
	if permitLimit <= 0 {
		permitLimit = DefaultPermitLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if queueLimit < 0 {
		queueLimit = DefaultQueueLimit
	}
	return &FixedWindow{
		permitLimit: permitLimit,
		window:      window,
		queueLimit:  queueLimit,
		now:         time.Now,
	}
}

// Allow reports whether the current request may proceed. It never errors
// and it never blocks beyond the mutex.
func (l *FixedWindow) Allow() bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	i := 0
	for i < len(l.stamps) && now.Sub(l.stamps[i]) > l.window {
		i++
	}
	if i > 0 {
		l.stamps = append(l.stamps[:0], l.stamps[i:]...)
	}

	if len(l.stamps) >= l.permitLimit+l.queueLimit {
		return false
	}
	l.stamps = append(l.stamps, now)
	return true
}

// Middleware rejects over-limit requests with 429 before any other work.
func (l *FixedWindow) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow() {
			requestsRejected.Inc()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"message": "Too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
