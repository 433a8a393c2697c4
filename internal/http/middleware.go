package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// CustomLoggerMiddleware logs every request with slog, including the request id.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		attrs := []any{
			slog.String("request_id", requestid.Get(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("http request", attrs...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("http request", attrs...)
		default:
			logger.Info("http request", attrs...)
		}
	}
}

// RateLimitMiddleware limits the request rate of the routes it is attached to with a
// token bucket. The API serves one local owner, so a single bucket covers every client.
//
// Returns 429 Too Many Requests with a Retry-After header when the bucket is empty.
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if limiter.Allow() {
			c.Next()
			return
		}

		reservation := limiter.Reserve()
		retryAfter := int(reservation.Delay().Seconds()) + 1
		reservation.Cancel()

		logger.Debug("rate limit exceeded",
			slog.String("client_ip", c.ClientIP()),
			slog.Int("retry_after", retryAfter))

		c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":   "rate_limit_exceeded",
			"message": "Too many requests. Please retry after the specified delay.",
		})
	}
}
