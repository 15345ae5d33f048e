package handler

import (
	"ai-docgen-be/internal/pkg/logger"
	internalWS "ai-docgen-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ProgressHandler upgrades clients onto the live generation-progress
// stream. A client passes ?session_id= to watch one run; omitting it
// subscribes to every run on this instance.
type ProgressHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewProgressHandler(hub *internalWS.Hub, log logger.ILogger) *ProgressHandler {
	return &ProgressHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *ProgressHandler) ServeWs(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID != "" {
		if _, err := uuid.Parse(sessionID); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session_id format"})
		}
	}

	// Upgrade via Fiber WebSocket Middleware
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ProgressHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})
			internalWS.ServeWs(h.hub, conn, sessionID)
			h.logger.Info("ProgressHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *ProgressHandler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/progress/v1")
	group.Get("/ws", h.ServeWs)
}
