package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/palfi-booking/internal/httperr"
)

// visitorIdle is how long an IP may stay quiet before its bucket is dropped.
// Buckets refill within a minute, so nothing is lost by forgetting them.
const visitorIdle = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP. Buckets unused for
// visitorIdle are evicted on the next lookup after a cleanup interval.
type IPRateLimiter struct {
	mu          sync.Mutex
	visitors    map[string]*visitor
	every       rate.Limit
	burst       int
	now         func() time.Time
	lastCleanup time.Time
}

// NewIPRateLimiter allows perMinute requests per IP, all of which may come
// in a burst.
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &IPRateLimiter{
		visitors:    make(map[string]*visitor),
		every:       rate.Every(time.Minute / time.Duration(perMinute)),
		burst:       perMinute,
		now:         time.Now,
		lastCleanup: time.Now(),
	}
}

func (l *IPRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastCleanup) >= visitorIdle {
		l.cleanupLocked(now)
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *IPRateLimiter) cleanupLocked(now time.Time) {
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) >= visitorIdle {
			delete(l.visitors, ip)
		}
	}
	l.lastCleanup = now
}

// Len is the number of tracked IPs.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func RateLimitMiddleware(l *IPRateLimiter, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.allow(ip) {
			log.Warn().Str("ip", ip).Str("path", c.FullPath()).Msg("rate limit exceeded")
			httperr.Abort(c, http.StatusTooManyRequests, "too_many_requests", "Túl sok próbálkozás. Kérjük, próbálja újra később.")
			return
		}
		c.Next()
	}
}
