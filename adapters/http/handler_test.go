package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satriahrh/mistral-web/adapters/history"
	"github.com/satriahrh/mistral-web/domain"
	"github.com/satriahrh/mistral-web/usecase"
	"github.com/satriahrh/mistral-web/utils/config"
)

type stubLlm struct {
	reply string
	err   error
}

func (s *stubLlm) Generate(ctx context.Context, messages []domain.Message, params domain.GenerateParams) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testConfig() *config.Config {
	return &config.Config{
		ServerURL:            "http://localhost:8081",
		MaxContextWindow:     4096,
		SystemMessageReserve: 200,
		ResponseReserve:      500,
		MinTokens:            100,
		MaxTokens:            4096,
		Temperature:          0.7,
		TopP:                 0.95,
	}
}

func newTestHandler(llm domain.Llm) *ChatHandler {
	cfg := testConfig()
	svc := usecase.NewChatService(cfg, llm, history.New(), nil)
	return NewChatHandler(cfg, svc)
}

func performChat(t *testing.T, handler *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Chat(c))
	return rec
}

func TestChatSuccess(t *testing.T) {
	handler := newTestHandler(&stubLlm{reply: "Hello back"})

	rec := performChat(t, handler, `{"message":"Hello"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hello back", resp.Response)
	_, err := uuid.Parse(resp.SessionID)
	assert.NoError(t, err)
}

func TestChatReusesSessionID(t *testing.T) {
	handler := newTestHandler(&stubLlm{reply: "ok"})
	sessionID := uuid.NewString()

	rec := performChat(t, handler, `{"message":"Hello","session_id":"`+sessionID+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, sessionID, resp.SessionID)
}

func TestChatRejectsMissingMessage(t *testing.T) {
	handler := newTestHandler(&stubLlm{reply: "ok"})

	rec := performChat(t, handler, `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatRejectsInvalidSessionID(t *testing.T) {
	handler := newTestHandler(&stubLlm{reply: "ok"})

	rec := performChat(t, handler, `{"message":"Hello","session_id":"not-a-uuid"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatUpstreamErrorBecomes500(t *testing.T) {
	handler := newTestHandler(&stubLlm{
		err: &domain.UpstreamError{StatusCode: 500, Body: "server overloaded"},
	})

	rec := performChat(t, handler, `{"message":"Hello"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "server overloaded")
}

func TestHealth(t *testing.T) {
	handler := newTestHandler(&stubLlm{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.Health(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGenerateJWTAndMiddleware(t *testing.T) {
	cfg := testConfig()
	cfg.AuthSecret = "test-secret"
	svc := usecase.NewChatService(cfg, &stubLlm{reply: "ok"}, history.New(), nil)
	handler := NewChatHandler(cfg, svc)
	e := echo.New()

	// Issue a token with the shared secret.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", nil)
	req.Header.Set("X-API-Secret", "test-secret")
	rec := httptest.NewRecorder()
	require.NoError(t, handler.GenerateJWT(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var tokenResp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokenResp))
	require.NotEmpty(t, tokenResp["token"])

	// The middleware accepts the issued token.
	protected := handler.JWTMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req = httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Header.Set("Authorization", "Bearer "+tokenResp["token"])
	rec = httptest.NewRecorder()
	require.NoError(t, protected(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	// And rejects a missing or garbage token.
	req = httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	err := protected(e.NewContext(req, httptest.NewRecorder()))
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	err = protected(e.NewContext(req, httptest.NewRecorder()))
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestGenerateJWTRejectsBadSecret(t *testing.T) {
	cfg := testConfig()
	cfg.AuthSecret = "test-secret"
	svc := usecase.NewChatService(cfg, &stubLlm{}, history.New(), nil)
	handler := NewChatHandler(cfg, svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", nil)
	req.Header.Set("X-API-Secret", "wrong")
	err := handler.GenerateJWT(e.NewContext(req, httptest.NewRecorder()))

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
