package middleware

import (
	"net/http"
	"strings"

	"chat-animation/internal/services"
	"chat-animation/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards settings writes. With no secret configured every
// request passes through.
func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if service == nil || !service.Enabled() {
			c.Next()
			return
		}

		claims, err := service.ParseAccessToken(extractBearer(c))
		if err != nil {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		ctx := services.WithEditorContext(c.Request.Context(), claims.Editor)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
