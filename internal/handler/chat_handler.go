package handler

import (
	"context"
	"encoding/json"

	"github.com/atemmel/sims-chatbot/internal/dto"
	"github.com/atemmel/sims-chatbot/internal/pkg/logger"
	"github.com/atemmel/sims-chatbot/internal/service"
	internalWS "github.com/atemmel/sims-chatbot/internal/websocket"
	"github.com/atemmel/sims-chatbot/pkg/knowledge"
	"github.com/atemmel/sims-chatbot/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ChatHandler owns the websocket endpoint: it assigns connection ids,
// relays utterances into the chat service and pushes enriched responses
// back through the hub.
type ChatHandler struct {
	chat     service.IChatService
	hub      *internalWS.Hub
	store    *knowledge.Store
	registry *session.Registry
	logger   logger.ILogger
}

func NewChatHandler(
	chat service.IChatService,
	hub *internalWS.Hub,
	store *knowledge.Store,
	registry *session.Registry,
	log logger.ILogger,
) *ChatHandler {
	return &ChatHandler{
		chat:     chat,
		hub:      hub,
		store:    store,
		registry: registry,
		logger:   log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *ChatHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		connectionID := uuid.NewString()
		h.logger.Info("ChatHandler", "Starting WebSocket session", map[string]interface{}{"connection_id": connectionID})

		// The greeting is written directly: the write pump is not running
		// yet, so this is the only writer on the socket.
		fragments := h.chat.Connect(context.Background(), connectionID)
		if data, err := json.Marshal(dto.ChatResponse{Response: fragments}); err == nil {
			conn.WriteMessage(websocket.TextMessage, data)
		}

		internalWS.ServeWs(h.hub, conn, connectionID, h)

		h.chat.Disconnect(context.Background(), connectionID)
		h.logger.Info("ChatHandler", "WebSocket session ended", map[string]interface{}{"connection_id": connectionID})
	})(c)
}

// OnMessage implements websocket.MessageHandler. It runs on the
// connection's read pump goroutine.
func (h *ChatHandler) OnMessage(connectionID, text string) {
	fragments, err := h.chat.Message(context.Background(), connectionID, text)
	if err != nil {
		// Unknown connection; the socket is already torn down or was never
		// registered. Nothing sensible to deliver.
		return
	}
	h.deliver(connectionID, fragments)
}

func (h *ChatHandler) deliver(connectionID string, fragments []dto.Fragment) {
	data, err := json.Marshal(dto.ChatResponse{Response: fragments})
	if err != nil {
		h.logger.Error("ChatHandler", "Failed to marshal response", map[string]interface{}{
			"connection_id": connectionID,
			"error":         err.Error(),
		})
		return
	}
	h.hub.Send(connectionID, data)
}

// Health reports dataset sizes and live session count.
func (h *ChatHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":        "ok",
		"offices":       h.store.OfficeCount(),
		"employees":     h.store.EmployeeCount(),
		"articles":      len(h.store.Articles()),
		"live_sessions": h.registry.Len(),
	})
}

// RegisterRoutes registers the chat routes.
func (h *ChatHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.Health)

	// WebSocket
	router.Get("/ws", h.ServeWs)
}
