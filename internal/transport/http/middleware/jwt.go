package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"syncpad/internal/pkg/jwtutil"
	"syncpad/internal/transport/http/response"
)

const ContextRoleKey = "role"

// RequireModerator gates moderation and admin routes behind a valid
// moderator JWT.
func RequireModerator(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, 401, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, 401, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		if claims.Role != jwtutil.RoleModerator {
			response.Error(c, 401, response.CodeUnauthorized, "insufficient role")
			c.Abort()
			return
		}

		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}
