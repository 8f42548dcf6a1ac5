package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/wb-go/wbf/ginext"
	"golang.org/x/time/rate"
)

// ClientLimiter hands out a token bucket per client key and forgets idle ones.
type ClientLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
}

type client struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewClientLimiter(rps float64, burst int, idleTTL time.Duration) *ClientLimiter {
	if idleTTL <= 0 {
		idleTTL = 15 * time.Minute
	}
	return &ClientLimiter{
		clients: make(map[string]*client),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
	}
}

func (l *ClientLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	cl, ok := l.clients[key]
	if !ok {
		cl = &client{lim: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = cl
	}
	cl.lastSeen = now
	l.mu.Unlock()

	return cl.lim.AllowN(now, 1)
}

func (l *ClientLimiter) Cleanup(now time.Time) {
	cutoff := now.Add(-l.idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, cl := range l.clients {
		if cl.lastSeen.Before(cutoff) {
			delete(l.clients, k)
		}
	}
}

func (l *ClientLimiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// StartJanitor drops idle clients every interval until ctx is done.
func (l *ClientLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				l.Cleanup(now)
			}
		}
	}()
}

func RateLimit(l *ClientLimiter) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				ginext.H{"error": "too many requests"},
			)
			return
		}
		c.Next()
	}
}
