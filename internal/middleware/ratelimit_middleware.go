package middleware

import (
	"net/http"
	"strconv"

	"chat-animation/internal/redis"
	"chat-animation/internal/services"
	"chat-animation/internal/transport/httpdto"
	"chat-animation/pkg/logger"

	"github.com/gin-gonic/gin"
)

// WriteRateLimitMiddleware throttles mutating requests per editor, falling
// back to the client IP. A nil limiter disables throttling.
func WriteRateLimitMiddleware(limiter *redis.RateLimiter, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		clientID := c.ClientIP()
		if editor, ok := services.EditorFromContext(c.Request.Context()); ok {
			clientID = "editor:" + editor
		}

		result, err := limiter.AllowWrite(c.Request.Context(), clientID)
		if err != nil {
			// Redis trouble should not lock editors out.
			if l != nil {
				l.WithContext(c.Request.Context()).Warnf("rate limit check: %v", err)
			}
			c.Next()
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("rate limit exceeded", "RATE_LIMITED"))
			c.Abort()
			return
		}

		c.Next()
	}
}

func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
