// Package middleware contains the gin middleware chain of the API: bearer
// token authentication, role gating, rate limiting and request logging.
package middleware

import (
	"net/http"
	"strings"

	"github.com/lukafrizz/content-api/logger"
	"github.com/lukafrizz/content-api/web/entity"
	"github.com/lukafrizz/content-api/web/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	CtxUserID = "userId"
	CtxRole   = "role"
)

// AuthRequired extracts and verifies the bearer token. A missing token is
// 401; any verification failure is 403 without distinguishing the sub-reason
// to the caller. On success the verified identity and role are attached to
// the request context.
func AuthRequired(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{
				Success: false,
				Message: "access token required",
			})
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			logger.Debug("token rejected:", err)
			c.AbortWithStatusJSON(http.StatusForbidden, entity.Msg{
				Success: false,
				Message: "invalid token",
			})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireRole rejects the request unless the authenticated role is in the
// allow set. Roles match exactly; there is no hierarchy between moderator
// and admin.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		roleVal, exists := c.Get(CtxRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{
				Success: false,
				Message: "access token required",
			})
			return
		}
		role, ok := roleVal.(string)
		if !ok || !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, entity.Msg{
				Success: false,
				Message: "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}
