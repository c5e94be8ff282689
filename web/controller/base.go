// Package controller provides the HTTP request handlers for the AgriSense
// web app: registration, login and the authenticated crop recommendation
// pages.
package controller

import (
	"net/http"

	"github.com/Rajeshwari-1K/AgriSense-AI/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the authentication guards shared by all
// controllers.
type BaseController struct{}

// checkLogin guards HTML routes: anonymous requests are bounced to the
// login page with a warning.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		session.Flash(c, "warning", "Please login to continue")
		c.Redirect(http.StatusFound, "/auth")
		c.Abort()
		return
	}
	c.Next()
}

// checkLoginJSON guards API-style routes: anonymous requests get a 401
// envelope instead of a redirect.
func (a *BaseController) checkLoginJSON(c *gin.Context) {
	if !session.IsLogin(c) {
		pureJsonMsg(c, http.StatusUnauthorized, false, "Not logged in")
		c.Abort()
		return
	}
	c.Next()
}
