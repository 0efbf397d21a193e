package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotelfood/utils"
)

// CookieName is where the browser keeps the JWT after login.
const CookieName = "hotelfood_token"

// header ก่อน แล้วค่อย cookie
func tokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if v, err := c.Cookie(CookieName); err == nil {
		return v
	}
	return ""
}

func setClaims(c *gin.Context, claims *utils.Claims) {
	c.Set(utils.CtxUserID, claims.UserID)
	c.Set(utils.CtxRole, claims.Role)
	c.Set(utils.CtxSessionID, claims.SessionID)
	c.Set("claims", claims)
}

// ส่งกลับหน้าเลือก role โดยไม่รัน handler
func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
	c.Abort()
}

// AuthMiddleware ใช้ตรวจ token และ (ถ้ามี) บังคับ role.
// ไม่มี token / token เสีย / role ไม่ตรง -> 303 ไป "/"
func AuthMiddleware(secret string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			redirectHome(c)
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			redirectHome(c)
			return
		}
		setClaims(c, claims)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				redirectHome(c)
				return
			}
		}

		c.Next()
	}
}

// OptionalAuth loads the claims when a valid token is present and never blocks.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := tokenFromRequest(c); tokenStr != "" {
			if claims, err := utils.ParseToken(tokenStr, secret); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}
