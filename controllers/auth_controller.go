package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotelfood/entity"
	"hotelfood/middlewares"
	"hotelfood/pkg/resp"
	"hotelfood/services"
	"hotelfood/utils"
)

type SelectRoleRequest struct {
	Role string `form:"role" json:"role" binding:"required"`
}
type StaffLoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type AuthController struct {
	Svc          *services.AuthService
	CookieSecure bool
	TTL          time.Duration
}

func NewAuthController(svc *services.AuthService, cookieSecure bool, ttl time.Duration) *AuthController {
	return &AuthController{Svc: svc, CookieSecure: cookieSecure, TTL: ttl}
}

func (a *AuthController) setCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.CookieName, token, maxAge, "/", "", a.CookieSecure, true)
}

// home page ของแต่ละ role
func landing(role string) string {
	switch role {
	case entity.RoleCustomer:
		return "/customer/"
	case entity.RoleKitchen:
		return "/kitchen/"
	case entity.RoleAdmin:
		return "/dashboard/"
	}
	return "/"
}

// GET /
func (a *AuthController) Home(c *gin.Context) {
	role := utils.CurrentRole(c)
	resp.OK(c, gin.H{"roles": entity.Roles, "role": role, "next": landing(role)})
}

// POST /
func (a *AuthController) SelectRole(c *gin.Context) {
	var req SelectRoleRequest
	if err := c.ShouldBind(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	switch req.Role {
	case entity.RoleCustomer:
		sess, err := a.Svc.CustomerLogin(c.Request.Context())
		if err != nil {
			handleError(c, err)
			return
		}
		a.setCookie(c, sess.Token, int(a.TTL.Seconds()))
		resp.OK(c, gin.H{"session": sess, "next": landing(sess.Role)})
	case entity.RoleKitchen, entity.RoleAdmin:
		// staff ต้องใส่รหัสผ่านก่อน
		c.Redirect(http.StatusSeeOther, "/admin_login")
	default:
		resp.BadRequest(c, "unknown role")
	}
}

// GET /admin_login
func (a *AuthController) StaffLoginForm(c *gin.Context) {
	resp.OK(c, gin.H{"action": "/admin_login", "fields": []string{"username", "password"}})
}

// POST /admin_login
func (a *AuthController) StaffLogin(c *gin.Context) {
	var req StaffLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	sess, err := a.Svc.StaffLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	a.setCookie(c, sess.Token, int(a.TTL.Seconds()))
	resp.OK(c, gin.H{"session": sess, "next": landing(sess.Role)})
}

// GET /logout/
func (a *AuthController) Logout(c *gin.Context) {
	if err := a.Svc.Logout(c.Request.Context(), utils.CurrentSessionID(c)); err != nil {
		_ = c.Error(err)
	}
	a.setCookie(c, "", -1)
	c.Redirect(http.StatusSeeOther, "/")
}
