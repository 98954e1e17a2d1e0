package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"pos-backend/pkg/authz"
	"pos-backend/pkg/resp"
	"pos-backend/utils"
)

// AuthMiddleware validates the bearer token and attaches the actor's
// grant to the request. When capabilities are given, at least one must be
// held; a superuser always passes.
func AuthMiddleware(secret string, required ...authz.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			resp.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(h, "Bearer "), secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		if claims.TokenType != utils.TokenAccess {
			resp.Unauthorized(c, "access token required")
			c.Abort()
			return
		}

		grant := claims.Grant()
		utils.SetGrant(c, grant)

		if len(required) > 0 && !grant.Superuser {
			allowed := false
			for _, cap := range required {
				if grant.Caps.Has(cap) {
					allowed = true
					break
				}
			}
			if !allowed {
				resp.Forbidden(c, "você não tem permissão para executar esta ação")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
