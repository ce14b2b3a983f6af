package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Throttle keeps one token bucket per client IP for login attempts.
type Throttle struct {
	mu       sync.Mutex
	limiters map[string]*throttleEntry
	perMin   int
	idle     time.Duration
	now      func() time.Time
}

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewThrottle(attemptsPerMinute int) *Throttle {
	if attemptsPerMinute <= 0 {
		attemptsPerMinute = 10
	}
	return &Throttle{
		limiters: make(map[string]*throttleEntry),
		perMin:   attemptsPerMinute,
		idle:     10 * time.Minute,
		now:      time.Now,
	}
}

// Allow consumes one attempt for ip.
func (t *Throttle) Allow(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	e, ok := t.limiters[ip]
	if !ok {
		e = &throttleEntry{
			limiter: rate.NewLimiter(rate.Limit(float64(t.perMin)/time.Minute.Seconds()), t.perMin),
		}
		t.limiters[ip] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Sweep drops limiters idle for longer than the idle window and returns how many were removed.
func (t *Throttle) Sweep() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-t.idle)
	n := 0
	for ip, e := range t.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(t.limiters, ip)
			n++
		}
	}
	return n
}

func (t *Throttle) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.limiters)
}
