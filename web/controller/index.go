package controller

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/Rajeshwari-1K/AgriSense-AI/config"
	"github.com/Rajeshwari-1K/AgriSense-AI/logger"
	"github.com/Rajeshwari-1K/AgriSense-AI/web/service"
	"github.com/Rajeshwari-1K/AgriSense-AI/web/session"

	"github.com/gin-gonic/gin"
)

// emailShape matches the loose something@something.something check applied
// at signup.
var emailShape = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

const minPasswordLen = 6

// IndexController handles the anonymous routes: login, signup and logout.
type IndexController struct {
	BaseController

	userService service.UserService
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/auth", a.auth)
	g.GET("/signup", a.signupForm)
	g.GET("/logout", a.logout)

	g.POST("/signup", a.signup)
	g.POST("/login", a.login)
}

// index redirects to the login page, or straight to the dashboard for a
// logged-in browser.
func (a *IndexController) index(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	c.Redirect(http.StatusFound, "/auth")
}

// auth shows the login page.
func (a *IndexController) auth(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	html(c, "login.html", "Login", nil)
}

// signupForm shows the registration page.
func (a *IndexController) signupForm(c *gin.Context) {
	html(c, "signup.html", "Sign Up", nil)
}

// signup validates the registration form and creates the account. Any
// failure flashes a specific message and returns to the form; success
// redirects to login without starting a session.
func (a *IndexController) signup(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	confirmPassword := c.PostForm("confirm_password")

	if name == "" || email == "" || password == "" {
		session.Flash(c, "danger", "All fields are required!")
		c.Redirect(http.StatusFound, "/signup")
		return
	}
	if password != confirmPassword {
		session.Flash(c, "danger", "Passwords do not match!")
		c.Redirect(http.StatusFound, "/signup")
		return
	}
	if !emailShape.MatchString(email) {
		session.Flash(c, "danger", "Invalid email address!")
		c.Redirect(http.StatusFound, "/signup")
		return
	}
	if len(password) < minPasswordLen {
		session.Flash(c, "danger", "Password must be at least 6 characters long!")
		c.Redirect(http.StatusFound, "/signup")
		return
	}

	_, err := a.userService.CreateUser(name, email, password)
	if err == service.ErrEmailTaken {
		session.Flash(c, "warning", "Email already registered! Please login.")
		c.Redirect(http.StatusFound, "/signup")
		return
	}
	if err != nil {
		logger.Warning("signup failed:", err)
		session.Flash(c, "danger", "Error during signup, please try again.")
		c.Redirect(http.StatusFound, "/signup")
		return
	}

	session.Flash(c, "success", "Signup successful! Please login.")
	c.Redirect(http.StatusFound, "/auth")
}

// login authenticates the user and starts a session. The failure message
// never reveals whether the email exists.
func (a *IndexController) login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if email == "" || password == "" {
		session.Flash(c, "danger", "Please enter both email and password")
		c.Redirect(http.StatusFound, "/auth")
		return
	}

	user := a.userService.CheckUser(email, password)
	if user == nil {
		logger.Warningf("failed login for %q from %s", email, getRemoteIp(c))
		session.Flash(c, "danger", "Invalid email or password!")
		c.Redirect(http.StatusFound, "/auth")
		return
	}

	if err := a.userService.TouchLastLogin(user.Id); err != nil {
		logger.Warning("update last login:", err)
	}

	if err := session.SetMaxAge(c, config.GetSessionMaxAge()*60); err != nil {
		logger.Warning("unable to set session max age:", err)
	}
	if err := session.SetLoginUser(c, session.User{Id: user.Id, Name: user.Name, Email: user.Email}); err != nil {
		logger.Warning("unable to save session:", err)
		session.Flash(c, "danger", "Login error, please try again.")
		c.Redirect(http.StatusFound, "/auth")
		return
	}

	logger.Infof("%s logged in from %s", user.Email, getRemoteIp(c))
	session.Flash(c, "success", "Welcome back, "+user.Name+"!")
	c.Redirect(http.StatusFound, "/home")
}

// logout clears the session unconditionally.
func (a *IndexController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out", user.Email)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	session.Flash(c, "success", "You have been logged out successfully.")
	c.Redirect(http.StatusFound, "/auth")
}
