package middleware

import (
	"net/http"
	"sync"
	"time"

	"localbooker/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore maps client IPs to their limiters. Entries idle for an hour
// are evicted so the map does not grow with every IP ever seen.
type limiterStore struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

var store = &limiterStore{clients: make(map[string]*clientLimiter)}

func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cl, ok := s.clients[ip]; ok {
		cl.lastSeen = time.Now()
		return cl.limiter
	}

	perMin := config.AppConfig.MaxRequestsPerMin
	if perMin <= 0 {
		perMin = 100
	}
	cl := &clientLimiter{
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin),
		lastSeen: time.Now(),
	}
	s.clients[ip] = cl
	return cl.limiter
}

func (s *limiterStore) evictIdle(olderThan time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-olderThan)
	for ip, cl := range s.clients {
		if cl.lastSeen.Before(cutoff) {
			delete(s.clients, ip)
		}
	}
}

func init() {
	go func() {
		for range time.Tick(10 * time.Minute) {
			store.evictIdle(time.Hour)
		}
	}()
}

// RateLimitMiddleware throttles each client IP to MAX_REQUESTS_PER_MIN.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.get(ip).Allow() {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
