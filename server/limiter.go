// SPDX-License-Identifier: MIT

package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientIdleTTL is how long a client's bucket survives without requests.
const clientIdleTTL = 10 * time.Minute

type clientEntry struct {
	limiter *rate.Limiter
	seen    time.Time
}

// clientLimiter keeps one token bucket per client host. Buckets idle for
// longer than idle are dropped on the next sweep, at most once per idle.
type clientLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientEntry
	rps       float64
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiter(rps float64, burst int) *clientLimiter {
	return &clientLimiter{
		clients:   make(map[string]*clientEntry),
		rps:       rps,
		burst:     burst,
		idle:      clientIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *clientLimiter) get(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}
	if e, ok := l.clients[host]; ok {
		e.seen = now
		return e.limiter
	}
	e := &clientEntry{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst), seen: now}
	l.clients[host] = e

	return e.limiter
}

// sweep drops idle buckets; l.mu must be held.
func (l *clientLimiter) sweep(now time.Time) {
	for host, e := range l.clients {
		if now.Sub(e.seen) >= l.idle {
			delete(l.clients, host)
		}
	}
	l.lastSweep = now
}

// len reports the number of tracked clients.
func (l *clientLimiter) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.clients)
}

// allow reports whether the client behind r may proceed.
func (l *clientLimiter) allow(r *http.Request) bool {
	return l.get(clientHost(r)).Allow()
}

func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
