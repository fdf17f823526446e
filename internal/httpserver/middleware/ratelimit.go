package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit 按客户端 IP 的令牌桶限流；perMin<=0 时不限流
func RateLimit(perMin int) gin.HandlerFunc {
	if perMin <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	l := &ipLimiter{
		every:   time.Minute / time.Duration(perMin),
		burst:   max(perMin/10, 1),
		clients: make(map[string]*rate.Limiter),
	}
	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limited"})
			return
		}
		c.Next()
	}
}

type ipLimiter struct {
	mu      sync.Mutex
	every   time.Duration
	burst   int
	clients map[string]*rate.Limiter
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.clients[ip]
	if !ok {
		// TODO: 按最近访问时间淘汰长期不活跃的客户端
		lim = rate.NewLimiter(rate.Every(l.every), l.burst)
		l.clients[ip] = lim
	}
	return lim
}
