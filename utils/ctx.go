package utils

import "github.com/gin-gonic/gin"

// keys the auth middleware stores on the gin context
const (
	CtxUserID    = "userId"
	CtxRole      = "role"
	CtxSessionID = "sessionId"
)

func CurrentUserID(c *gin.Context) uint {
	v, _ := c.Get(CtxUserID)
	switch id := v.(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case int64:
		return uint(id)
	case float64:
		return uint(id)
	default:
		return 0
	}
}

func CurrentRole(c *gin.Context) string {
	if v, ok := c.Get(CtxRole); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func CurrentSessionID(c *gin.Context) string {
	return c.GetString(CtxSessionID)
}
