// middlewares/ws_auth.go
package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelfood/utils"
)

// WSAuthMiddleware ใช้ตรวจสอบ JWT จาก query, header หรือ cookie.
// browser websocket ตาม redirect ไม่ได้ เลยตอบ 401/403 แทน 303
func WSAuthMiddleware(secret string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1) ลองอ่านจาก query ก่อน
		tokenStr := c.Query("token")
		if tokenStr == "" {
			// 2) ถ้าไม่มี ลอง header / cookie
			tokenStr = tokenFromRequest(c)
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing token"})
			return
		}

		// 3) Parse JWT
		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
				return
			}
		}

		// 4) เก็บ userId, role ลง context
		setClaims(c, claims)
		c.Next()
	}
}
