package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smartmeal/smartmeal-backend/internal/platform/ctxutil"
)

const headerUserID = "X-User-Id"

// AttachRequestContext resolves the caller identity from the X-User-Id
// header. The gateway in front of this service owns authentication; routes
// that require an identity enforce it themselves.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(headerUserID))
		if raw == "" {
			c.Next()
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			c.Next()
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: userID})
		c.Request = c.Request.WithContext(ctx)
		c.Set("user_id", userID.String())
		c.Next()
	}
}
