package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"mindly-be/internal/dto"
	"mindly-be/internal/pkg/logger"
	"mindly-be/internal/pkg/serverutils"
	"mindly-be/internal/repository/memory"
	"mindly-be/internal/service"
	"mindly-be/pkg/wellness"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoReplies struct{ lastContext string }

func (e *echoReplies) GenerateReply(ctx context.Context, message string, history []string, assessmentContext string) (string, error) {
	e.lastContext = assessmentContext
	return "echo: " + message, nil
}

type neutralExtractor struct{}

func (neutralExtractor) ExtractMetrics(ctx context.Context, message string, history []string) (wellness.Metrics, error) {
	return wellness.Neutral(), nil
}

type okContact struct{ got *dto.ContactRequest }

func (o *okContact) Submit(ctx context.Context, request *dto.ContactRequest) error {
	o.got = request
	return nil
}

type testApp struct {
	app     *fiber.App
	replies *echoReplies
	contact *okContact
}

const jwtSecret = "test-secret"

func newTestApp() *testApp {
	log := logger.NewNopLogger()
	questionnaires := service.NewQuestionnaireService(memory.NewQuestionnaireRepository(), nil, log)
	replies := &echoReplies{}
	chat := service.NewChatService(memory.NewSessionRepository(0, 0), questionnaires, replies, neutralExtractor{}, nil, log, service.ChatOptions{})
	knowledge := service.NewKnowledgeService(nil, nil, nil, log, 3)
	contact := &okContact{}

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler})
	api := app.Group("/api", serverutils.OptionalJwtMiddleware(jwtSecret))
	NewHealthController().RegisterRoutes(api)
	NewChatController(chat).RegisterRoutes(api)
	NewQuestionnaireController(questionnaires).RegisterRoutes(api)
	NewKnowledgeController(knowledge).RegisterRoutes(api)
	NewContactController(contact).RegisterRoutes(api)

	return &testApp{app: app, replies: replies, contact: contact}
}

func (a *testApp) do(t *testing.T, method, path, body string, headers ...string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	code, out := newTestApp().do(t, "GET", "/api/health", "")
	assert.Equal(t, 200, code)
	assert.Equal(t, "ok", out["status"])
}

func TestChatEndpoint(t *testing.T) {
	a := newTestApp()

	code, out := a.do(t, "POST", "/api/chat", `{"message":"I feel stressed","session_id":"s1"}`)
	assert.Equal(t, 200, code)
	assert.Equal(t, "echo: I feel stressed", out["response"])
	metrics, ok := out["metrics"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, metrics, 6)
	assert.Equal(t, 5.0, metrics["stress"])

	code, out = a.do(t, "POST", "/api/chat", `{"message":"   ","session_id":"s1"}`)
	assert.Equal(t, 400, code)
	assert.Equal(t, "Empty message", out["error"])

	code, out = a.do(t, "POST", "/api/chat", `{"message":`)
	assert.Equal(t, 400, code)
	assert.NotEmpty(t, out["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp()

	code, out := a.do(t, "GET", "/api/metrics?session_id=nope", "")
	assert.Equal(t, 404, code)
	assert.Equal(t, "Session not found", out["error"])

	a.do(t, "POST", "/api/chat", `{"message":"hello","session_id":"s1"}`)
	a.do(t, "POST", "/api/chat", `{"message":"again","session_id":"s1"}`)

	code, out = a.do(t, "GET", "/api/metrics?session_id=s1", "")
	assert.Equal(t, 200, code)
	history, ok := out["history"].([]any)
	require.True(t, ok)
	require.Len(t, history, 2)
	second := history[1].(map[string]any)
	assert.Equal(t, 1.0, second["timestamp"])
	assert.Equal(t, "again", second["message"])
	assert.Equal(t, out["latest"], out["average"])
}

func TestQuestionnaireEndpoints(t *testing.T) {
	a := newTestApp()

	code, _ := a.do(t, "GET", "/api/questionnaire/latest?userId=7", "")
	assert.Equal(t, 404, code)

	code, out := a.do(t, "POST", "/api/questionnaire/latest",
		`{"userId":7,"timestamp":"2025-10-01T10:00:00Z","responses":{"phq1":2,"phq2":3,"ghq1":1}}`)
	assert.Equal(t, 200, code)
	assert.Equal(t, true, out["saved"])

	code, out = a.do(t, "GET", "/api/questionnaire/latest?userId=7", "")
	assert.Equal(t, 200, code)
	assert.Equal(t, "2025-10-01T10:00:00Z", out["timestamp"])

	code, out = a.do(t, "GET", "/api/questionnaire/summary?userId=7", "")
	assert.Equal(t, 200, code)
	assert.Equal(t, "Depression concerns (PHQ: 2.5/3)", out["context"])

	// the chat turn picks up the saved assessment
	a.do(t, "POST", "/api/chat", `{"message":"hi","user_id":"7"}`)
	assert.Equal(t, "Depression concerns (PHQ: 2.5/3)", a.replies.lastContext)

	code, out = a.do(t, "POST", "/api/questionnaire/latest", `{"responses":{}}`)
	assert.Equal(t, 400, code)
	assert.Contains(t, out["error"], "userid is required")
}

func TestQuestionnaireJwtOverridesBody(t *testing.T) {
	a := newTestApp()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "from-token"}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)

	code, _ := a.do(t, "POST", "/api/questionnaire/latest", `{"userId":"from-body","responses":{"acad1":1}}`,
		"Authorization", "Bearer "+token)
	assert.Equal(t, 200, code)

	code, _ = a.do(t, "GET", "/api/questionnaire/latest?userId=from-body", "")
	assert.Equal(t, 404, code)
	code, _ = a.do(t, "GET", "/api/questionnaire/latest?userId=from-token", "")
	assert.Equal(t, 200, code)
}

func TestKnowledgeUnavailable(t *testing.T) {
	a := newTestApp()

	code, out := a.do(t, "GET", "/api/knowledge/search?q=sleep", "")
	assert.Equal(t, 503, code)
	assert.Equal(t, service.ErrKnowledgeUnavailable.Error(), out["error"])

	code, _ = a.do(t, "GET", "/api/knowledge/search", "")
	assert.Equal(t, 400, code)
}

func TestContactEndpoint(t *testing.T) {
	a := newTestApp()

	code, out := a.do(t, "POST", "/api/contact", `{"name":"Ana","email":"ana@uni.edu","message":"hello"}`)
	assert.Equal(t, 200, code)
	assert.Equal(t, true, out["success"])
	require.NotNil(t, a.contact.got)
	assert.Equal(t, "Ana", a.contact.got.Name)

	code, _ = a.do(t, "POST", "/api/contact", `{"name":"Ana","email":"not-an-email","message":"hello"}`)
	assert.Equal(t, 400, code)
}
