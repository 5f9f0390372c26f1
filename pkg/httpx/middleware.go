package httpx

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const ctxUserIDKey = "user_id"

// RequestLogger logs one line per request.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		log.InfoContext(c.Request.Context(), "http request",
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}

// BearerToken returns the token from an "Authorization: Bearer" header.
func BearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	return tok, tok != ""
}

func SetUserID(c *gin.Context, userID string) {
	c.Set(ctxUserIDKey, userID)
}

// UserID is the signed-in user set by the auth middleware, or "".
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserIDKey)
}
