package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionLocalKey = "session_id"

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	slog.Debug("HTTP request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start))

	return err
}

// sessionMiddleware issues a chat session cookie on first contact and refreshes its expiry.
func (s *Server) sessionMiddleware(c *fiber.Ctx) error {
	id := c.Cookies(s.cfg.Chat.CookieName)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	c.Cookie(&fiber.Cookie{
		Name:     s.cfg.Chat.CookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(s.cfg.Chat.SessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	c.Locals(sessionLocalKey, id)

	return c.Next()
}

func (s *Server) analyticsEnabled(c *fiber.Ctx) error {
	if s.log == nil {
		return fiber.NewError(fiber.StatusNotFound, "analytics are disabled")
	}

	return c.Next()
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionLocalKey).(string)
	return id
}
