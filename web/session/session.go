// Package session wraps the signed cookie session carried by the browser.
// The cookie is HMAC-signed by the store; anything that fails verification
// simply reads back as an anonymous session.
package session

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// CookieName is the session cookie issued to browsers.
const CookieName = "agrisense"

const loginUser = "LOGIN_USER"

// User is the identity bound to a logged-in session.
type User struct {
	Id    string
	Name  string
	Email string
}

func init() {
	gob.Register(User{})
}

func SetLoginUser(c *gin.Context, user User) error {
	s := sessions.Default(c)
	s.Set(loginUser, user)
	return s.Save()
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

func GetLoginUser(c *gin.Context) *User {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if user, ok := obj.(User); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

// ClearSession drops every identity field bound at login. The cookie itself
// survives so a logout flash can still ride it to the next page.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(loginUser)
	return s.Save()
}
