package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"mindly-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "mindly:session_turns"

// Hub tracks open chat sockets by session so every tab watching a session
// sees each completed turn. With Redis, turns also reach sockets held by
// other instances.
type Hub struct {
	clients map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	// closed when Run returns
	stopped chan struct{}

	mu sync.RWMutex

	rdb        *redis.Client
	instanceId string

	logger logger.ILogger
}

type clusterFrame struct {
	Origin    string          `json:"origin"`
	SessionId string          `json:"session_id"`
	Frame     json.RawMessage `json:"frame"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopped:    make(chan struct{}),
		rdb:        rdb,
		instanceId: uuid.NewString(),
		logger:     log,
	}
}

// Run serves registrations until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.sessionId] == nil {
				h.clients[client.sessionId] = make(map[*Client]struct{})
			}
			h.clients[client.sessionId][client] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("Hub", "Client registered", map[string]interface{}{"session_id": client.sessionId})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// join registers a client. It reports false once the hub has stopped.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.stopped:
		return false
	}
}

// leave unregisters a client, directly if the hub has already stopped.
func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
		h.remove(c)
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.clients[client.sessionId]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)
		}
		if len(clients) == 0 {
			delete(h.clients, client.sessionId)
		}
	}
}

// Connected reports how many sockets watch the session on this instance.
func (h *Hub) Connected(sessionId string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionId])
}

// Publish delivers a turn frame to every socket on the session except origin.
func (h *Hub) Publish(sessionId string, frame []byte, origin *Client) {
	h.deliver(sessionId, frame, origin)

	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(clusterFrame{Origin: h.instanceId, SessionId: sessionId, Frame: frame})
	if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Failed to publish turn to cluster", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Hub) deliver(sessionId string, frame []byte, origin *Client) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[sessionId] {
		if client == origin {
			continue
		}
		select {
		case client.send <- frame:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping frame", map[string]interface{}{"session_id": sessionId})
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterFrame
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Malformed cluster frame", map[string]interface{}{"error": err.Error()})
				continue
			}
			if payload.Origin == h.instanceId {
				continue
			}
			h.deliver(payload.SessionId, payload.Frame, nil)
		}
	}
}
