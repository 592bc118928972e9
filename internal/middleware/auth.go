package middleware

import (
	"strings"

	"feedback_backend/internal/auth"
	"feedback_backend/internal/logger"
	"feedback_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware resolves an optional bearer token into a caller
// identity on the request context. A missing or invalid token leaves the
// request anonymous; per-operation predicates decide whether that is an
// error, so no HTTP rejection happens here.
func IdentityMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		id := &auth.Identity{
			UserID: claims.UserID,
			Role:   models.UserRole(claims.Role),
		}

		ctx := auth.WithIdentity(c.Request.Context(), id)
		ctx = logger.WithUserID(ctx, id.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
