package utils

import (
	"github.com/gin-gonic/gin"

	"pos-backend/pkg/authz"
)

const grantKey = "grant"

func SetGrant(c *gin.Context, g authz.Grant) {
	c.Set(grantKey, g)
}

// CurrentGrant returns the actor attached by the auth middleware; the
// zero Grant (no capabilities) when unauthenticated.
func CurrentGrant(c *gin.Context) authz.Grant {
	if v, ok := c.Get(grantKey); ok {
		if g, ok := v.(authz.Grant); ok {
			return g
		}
	}
	return authz.Grant{}
}

func CurrentUserID(c *gin.Context) uint {
	return CurrentGrant(c).UserID
}
