package handler

import (
	"go-affiliate-ops/internal/middleware"
	"go-affiliate-ops/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// WebSocketAuth rejects non-upgrade requests and sockets without a valid ?token=
func WebSocketAuth(sessions middleware.SessionValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}
		session, err := sessions.ValidateToken(c.Query("token"))
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}
		c.Locals("user_id", session.Actor.ID.String())
		return c.Next()
	}
}

// WebSocket registers the socket with the hub until the client goes away
func WebSocket(hub *ws.Hub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals("user_id").(string)
		hub.Register <- &ws.Client{Conn: c, UserID: userID}
		defer func() { hub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
