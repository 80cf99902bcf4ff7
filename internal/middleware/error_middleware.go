package middleware

import (
	"chat-animation/internal/transport/httpdto"
	"chat-animation/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler logs errors attached with c.Error and writes a response when
// the handler did not.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.WithContext(c.Request.Context()).Errorf("request error: %s", err.Error())
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(c.Writer.Status(), httpdto.NewErrorResponse(err.Error(), "INTERNAL_ERROR"))
	}
}
