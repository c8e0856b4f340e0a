package middleware

import (
	"context"
	"sync"
	"time"

	"pagecraft/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const (
	sweepInterval = 5 * time.Minute
	clientIdleTTL = 10 * time.Minute
)

type rateClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	requests int
	window   time.Duration

	mu      sync.Mutex
	clients map[string]*rateClient
}

// RateLimiter creates a per-IP rate limiting middleware. Idle clients are
// swept until ctx is done.
func RateLimiter(ctx context.Context, requests int, duration time.Duration) fiber.Handler {
	if requests <= 0 || duration <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	l := &rateLimiter{
		requests: requests,
		window:   duration,
		clients:  make(map[string]*rateClient),
	}
	go l.run(ctx, sweepInterval)
	return l.handle
}

func (l *rateLimiter) run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.sweep(now)
		}
	}
}

// sweep drops clients not seen for clientIdleTTL
func (l *rateLimiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > clientIdleTTL {
			delete(l.clients, ip)
		}
	}
}

func (l *rateLimiter) handle(c *fiber.Ctx) error {
	ip := c.IP()

	l.mu.Lock()
	cl, exists := l.clients[ip]
	if !exists {
		limiter := rate.NewLimiter(rate.Every(l.window/time.Duration(l.requests)), l.requests)
		cl = &rateClient{limiter: limiter}
		l.clients[ip] = cl
	}
	cl.lastSeen = time.Now()
	l.mu.Unlock()

	if !cl.limiter.Allow() {
		utils.Log.WithField("ip", ip).Warn("Rate limit exceeded on %s", c.Path())
		return utils.TooManyRequestsError("Rate limit exceeded. Please try again later.", nil)
	}

	return c.Next()
}
