package websocket

import (
	"context"
	"strings"
	"time"

	"mindly-be/internal/entity"
	"mindly-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type ChatHandler struct {
	hub      *Hub
	chat     service.IChatService
	pongWait time.Duration
}

func NewChatHandler(hub *Hub, chat service.IChatService) *ChatHandler {
	return &ChatHandler{hub: hub, chat: chat, pongWait: pongWait}
}

// RegisterRoutes mounts GET /chat on the websocket group. The optional
// session_id query parameter picks the session frames default to.
func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	r.Use(func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	r.Get("/chat", websocket.New(h.serve))
}

func (h *ChatHandler) serve(conn *websocket.Conn) {
	sessionId := strings.TrimSpace(conn.Query("session_id"))
	if sessionId == "" {
		sessionId = entity.DefaultSessionID
	}
	userId, _ := conn.Locals("user_id").(string)

	client := &Client{
		hub:       h.hub,
		conn:      conn,
		chat:      h.chat,
		sessionId: sessionId,
		userId:    userId,
		send:      make(chan []byte, sendBuffer),
		pongWait:  h.pongWait,
	}
	if !h.hub.join(client) {
		conn.Close()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the connection is recycled once serve returns, so wait for the writer
	done := make(chan struct{})
	go func() {
		client.writePump()
		close(done)
	}()
	client.readPump(ctx)
	<-done
}
