package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pixelvault/pixelvault/internal/pkg/httputil"
)

const (
	UserIDKey    = "user_id"
	userIDHeader = "X-User-ID"
)

// Identity resolves the calling subject from the X-User-ID header set by
// the upstream gateway. Authentication itself happens before traffic
// reaches this service.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(userIDHeader)
		if header == "" {
			httputil.Error(c, http.StatusUnauthorized, "user identity header required")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(header)
		if err != nil {
			httputil.Error(c, http.StatusUnauthorized, "invalid user identity header")
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
