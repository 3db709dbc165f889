package websocket

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mindly-be/internal/dto"
	"mindly-be/internal/pkg/logger"
	"mindly-be/internal/repository/memory"
	"mindly-be/internal/service"
	"mindly-be/pkg/wellness"

	fws "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoReplies struct{}

func (echoReplies) GenerateReply(ctx context.Context, message string, history []string, assessmentContext string) (string, error) {
	return "echo: " + message, nil
}

type neutralExtractor struct{}

func (neutralExtractor) ExtractMetrics(ctx context.Context, message string, history []string) (wellness.Metrics, error) {
	return wellness.Neutral(), nil
}

// slowChat stands in for an LLM turn that outlasts the pong window.
type slowChat struct {
	delay time.Duration
}

func (s slowChat) HandleTurn(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	time.Sleep(s.delay)
	return &dto.ChatResponse{Response: "slow: " + request.Message, Metrics: wellness.Neutral()}, nil
}

func (s slowChat) GetMetrics(ctx context.Context, sessionId string) (*dto.MetricsResponse, error) {
	return nil, service.ErrSessionNotFound
}

func startServer(t *testing.T) (string, *Hub) {
	t.Helper()
	chat := service.NewChatService(memory.NewSessionRepository(0, 0), nil, echoReplies{}, neutralExtractor{}, nil, logger.NewNopLogger(), service.ChatOptions{})
	return startServerWith(t, chat, 0)
}

func startServerWith(t *testing.T, chat service.IChatService, wait time.Duration) (string, *Hub) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)

	handler := NewChatHandler(hub, chat)
	if wait > 0 {
		handler.pongWait = wait
	}
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.RegisterRoutes(app.Group("/ws"))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go app.Listener(ln)

	t.Cleanup(func() {
		_ = app.Shutdown()
		cancel()
	})
	return "ws://" + ln.Addr().String(), hub
}

func dial(t *testing.T, url string) *fws.Conn {
	t.Helper()
	conn, _, err := fws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *fws.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestChatSocket_Turn(t *testing.T) {
	base, _ := startServer(t)
	conn := dial(t, base+"/ws/chat?session_id=ws1")

	require.NoError(t, conn.WriteJSON(dto.ChatRequest{Message: "hello"}))
	out := readFrame(t, conn)
	assert.Equal(t, "echo: hello", out["response"])
	assert.Len(t, out["metrics"], 6)

	require.NoError(t, conn.WriteJSON(dto.ChatRequest{Message: "  "}))
	out = readFrame(t, conn)
	assert.Equal(t, "Empty message", out["error"])

	require.NoError(t, conn.WriteMessage(fws.TextMessage, []byte("{not json")))
	out = readFrame(t, conn)
	assert.Equal(t, "Invalid frame", out["error"])
}

func TestChatSocket_FanOutToSessionWatchers(t *testing.T) {
	base, hub := startServer(t)
	sender := dial(t, base+"/ws/chat?session_id=shared")
	watcher := dial(t, base+"/ws/chat?session_id=shared")
	other := dial(t, base+"/ws/chat?session_id=elsewhere")

	require.Eventually(t, func() bool { return hub.Connected("shared") == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, sender.WriteJSON(dto.ChatRequest{Message: "hi"}))
	assert.Equal(t, "echo: hi", readFrame(t, sender)["response"])
	assert.Equal(t, "echo: hi", readFrame(t, watcher)["response"])

	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err)
}

func TestChatSocket_SlowTurnKeepsConnection(t *testing.T) {
	base, _ := startServerWith(t, slowChat{delay: 500 * time.Millisecond}, 200*time.Millisecond)
	conn := dial(t, base+"/ws/chat?session_id=slow")

	for _, msg := range []string{"first", "second", "third"} {
		require.NoError(t, conn.WriteJSON(dto.ChatRequest{Message: msg}))
		assert.Equal(t, "slow: "+msg, readFrame(t, conn)["response"])
	}
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	c := &Client{hub: hub, sessionId: "s", send: make(chan []byte, 1)}
	require.True(t, hub.join(c))
	require.Eventually(t, func() bool { return hub.Connected("s") == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-stopped

	joined := make(chan bool, 1)
	go func() { joined <- hub.join(&Client{hub: hub, sessionId: "s", send: make(chan []byte, 1)}) }()
	select {
	case ok := <-joined:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("join blocked after the hub stopped")
	}

	left := make(chan struct{})
	go func() {
		hub.leave(c)
		close(left)
	}()
	select {
	case <-left:
	case <-time.After(time.Second):
		t.Fatal("leave blocked after the hub stopped")
	}
	_, open := <-c.send
	assert.False(t, open)
	assert.Equal(t, 0, hub.Connected("s"))
}

func TestChatSocket_RejectsPlainHTTP(t *testing.T) {
	log := logger.NewNopLogger()
	app := fiber.New()
	NewChatHandler(NewHub(nil, log), nil).RegisterRoutes(app.Group("/ws"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws/chat", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
