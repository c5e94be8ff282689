package session

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// FlashMessage is a one-shot notice shown on the next rendered page.
// Level matches the css classes used by the templates: success, warning,
// danger.
type FlashMessage struct {
	Level   string
	Message string
}

func init() {
	gob.Register(FlashMessage{})
}

// Flash queues a message for the next page render.
func Flash(c *gin.Context, level string, message string) {
	s := sessions.Default(c)
	s.AddFlash(FlashMessage{Level: level, Message: message})
	_ = s.Save()
}

// TakeFlashes drains and returns all queued messages.
func TakeFlashes(c *gin.Context) []FlashMessage {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) > 0 {
		_ = s.Save()
	}
	messages := make([]FlashMessage, 0, len(raw))
	for _, item := range raw {
		if msg, ok := item.(FlashMessage); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
