package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"mindly-be/internal/dto"
	"mindly-be/internal/service"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 16 * 1024
	sendBuffer     = 16
)

// Client is one chat socket. Frames are handled in arrival order.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	chat      service.IChatService
	sessionId string
	userId    string
	send      chan []byte
	pongWait  time.Duration
}

// readPump turns every inbound frame into a chat turn.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.extendReadDeadline()
	c.conn.SetPongHandler(func(string) error {
		c.extendReadDeadline()
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("ChatSocket", "Unexpected close", map[string]interface{}{
					"session_id": c.sessionId,
					"error":      err.Error(),
				})
			}
			return
		}
		c.handleFrame(ctx, frame)
		// pongs are only read between frames, so a slow turn must not
		// count against the peer
		c.extendReadDeadline()
	}
}

func (c *Client) extendReadDeadline() {
	c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
}

func (c *Client) handleFrame(ctx context.Context, frame []byte) {
	var req dto.ChatRequest
	if err := json.Unmarshal(frame, &req); err != nil {
		c.reply(dto.ErrorBody{Error: "Invalid frame"})
		return
	}
	if req.SessionId == "" {
		req.SessionId = c.sessionId
	}
	if c.userId != "" {
		req.UserId = dto.FlexibleID(c.userId)
	}

	res, err := c.chat.HandleTurn(ctx, &req)
	if err != nil {
		msg := "Internal server error"
		if errors.Is(err, service.ErrEmptyMessage) {
			msg = err.Error()
		}
		c.reply(dto.ErrorBody{Error: msg})
		return
	}

	data, _ := json.Marshal(res)
	c.reply(data)
	c.hub.Publish(req.SessionId, data, c)
}

func (c *Client) reply(v any) {
	data, ok := v.([]byte)
	if !ok {
		data, _ = json.Marshal(v)
	}
	select {
	case c.send <- data:
	default:
		c.hub.logger.Warn("ChatSocket", "Send buffer full, dropping frame", map[string]interface{}{"session_id": c.sessionId})
	}
}

// writePump owns every write to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.pongWait * 9 / 10)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
