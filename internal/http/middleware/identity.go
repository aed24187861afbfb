package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderUserID carries the demo identity. There is no authentication.
	HeaderUserID = "X-User-ID"
	// DemoUser is used when a request names no user.
	DemoUser = "demo-user"

	ctxKeyUserID = "userID"
)

// Identity resolves the caller once per request and stores it under
// "userID" so the logger and handlers agree on it.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ctxKeyUserID); !ok {
			if h := strings.TrimSpace(c.GetHeader(HeaderUserID)); h != "" {
				c.Set(ctxKeyUserID, h)
			}
		}
		c.Next()
	}
}

// UserID returns the caller resolved by Identity, falling back to the
// X-User-ID header and finally to DemoUser.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader(HeaderUserID)); h != "" {
			return h
		}
	}
	return DemoUser
}
