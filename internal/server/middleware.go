package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/jmylchreest/cleanread/internal/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	limiterTTL      = 10 * time.Minute
	slowRequest     = 5 * time.Second
)

// requestLogger tags each request with an id, stores a request-scoped
// logger in the request context and logs completion.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		l := s.logger.With("request_id", id)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), l))

		start := time.Now()
		l.Debug("request started",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"remote_ip", c.ClientIP())

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case duration > slowRequest:
			level = slog.LevelWarn
		}
		l.Log(c.Request.Context(), level, "request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"bytes", c.Writer.Size())
	}
}

// rateLimit applies a token bucket per client IP. Idle buckets expire from
// the cache after limiterTTL.
func (s *Server) rateLimit() gin.HandlerFunc {
	if s.cfg.RateLimit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		lim := s.limiterFor(c.ClientIP())
		if !lim.Allow() {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(s.cfg.RateLimit)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}

func (s *Server) limiterFor(key string) *rate.Limiter {
	if v, ok := s.limiters.Get(key); ok {
		s.limiters.SetDefault(key, v)
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(rate.Limit(s.cfg.RateLimit), s.cfg.RateBurst)
	if err := s.limiters.Add(key, lim, cache.DefaultExpiration); err != nil {
		// Another request created it first.
		if v, ok := s.limiters.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

func retryAfterSeconds(perSecond float64) int {
	if perSecond >= 1 {
		return 1
	}
	return int(1/perSecond + 0.5)
}

// limitBody caps request bodies at the configured size.
func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodySize)
		}
		c.Next()
	}
}
