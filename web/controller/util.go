package controller

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rajeshwari-1K/AgriSense-AI/config"
	"github.com/Rajeshwari-1K/AgriSense-AI/web/entity"
	"github.com/Rajeshwari-1K/AgriSense-AI/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// jsonMsg sends a success envelope with a message.
func jsonMsg(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, entity.Msg{
		Success: true,
		Message: msg,
	})
}

// pureJsonMsg sends an envelope with a custom status code. Failures carry
// the text in the error field, matching the delete endpoint contract.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	m := entity.Msg{Success: success}
	if success {
		m.Message = msg
	} else {
		m.Error = msg
	}
	c.JSON(statusCode, m)
}

// html renders a template with queued flash messages and the logged-in user
// folded into the data.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["flashes"] = session.TakeFlashes(c)
	if user := session.GetLoginUser(c); user != nil {
		data["user_name"] = user.Name
	}
	c.HTML(http.StatusOK, name, getContext(data))
}

// getContext adds version context to the provided gin.H.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver": config.GetVersion(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

// formFloat parses a numeric form field, silently defaulting to 0 when the
// field is absent or unparseable.
func formFloat(c *gin.Context, name string) float64 {
	raw := strings.TrimSpace(c.PostForm(name))
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}
