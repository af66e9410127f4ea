// controllers/auth_controller.go
package controllers

import (
	"net/http"
	"strings"

	"asset_perf_tool/app"

	"github.com/gin-gonic/gin"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

// Login exchanges a directory username for an app session. Credential
// verification happens upstream (gateway/SSO); this service only
// confirms the user exists in the directory and issues the cookie.
func (ax *AuthController) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	u, err := ax.Repo.FindUserByUsername(c.Request.Context(), strings.TrimSpace(in.Username))
	if err != nil {
		ax.fail(c, err)
		return
	}
	if err := ax.issueSession(c.Request.Context(), c.Writer, u.ID); err != nil {
		ax.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"userId": u.ID, "username": u.Username, "isAdmin": u.IsAdmin})
}

func (ax *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ax.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(ax.WebOrigin, "https://"),
	})
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (ax *AuthController) WhoAmI(c *gin.Context) {
	v, _ := c.Get("userID")
	uid, _ := v.(string)
	u, err := ax.Repo.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, app.H{
		"userId":      u.ID,
		"username":    u.Username,
		"displayName": u.DisplayName,
		"isAdmin":     u.IsAdmin,
	})
}
