package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/mistral-web/domain"
	"github.com/satriahrh/mistral-web/usecase"
	"github.com/satriahrh/mistral-web/utils/config"
	"github.com/satriahrh/mistral-web/utils/log"
)

const jwtExpiry = 24 * time.Hour

// ChatHandler exposes the chat API over HTTP.
type ChatHandler struct {
	cfg         *config.Config
	chatService *usecase.ChatService
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	MaxTokens *int   `json:"max_tokens,omitempty"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewChatHandler(cfg *config.Config, chatService *usecase.ChatService) *ChatHandler {
	return &ChatHandler{
		cfg:         cfg,
		chatService: chatService,
	}
}

// Chat handles POST /api/chat: one conversation turn against the session's
// history. Generation failures come back as a 500 with the upstream detail;
// they never crash the process.
func (h *ChatHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "message is required"})
	}
	if req.SessionID != "" {
		if _, err := uuid.Parse(req.SessionID); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid session_id"})
		}
	}

	maxTokens := h.cfg.MaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	log.WithCtx(c.Request().Context()).Info("chat request",
		zap.String("session_id", req.SessionID),
		zap.Int("max_tokens", maxTokens))

	result, err := h.chatService.Execute(c.Request().Context(), req.SessionID, req.Message, maxTokens)
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("chat turn failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: fmt.Sprintf("Failed to generate response: %v", errorDetail(err)),
		})
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Response:  result.Response,
		SessionID: result.SessionID,
	})
}

// errorDetail keeps the typed client errors readable in the API response.
func errorDetail(err error) string {
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return fmt.Sprintf("API request failed: %s", upstream.Body)
	}
	return err.Error()
}

// Index renders the chat page.
func (h *ChatHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", nil)
}

// Health is the liveness endpoint.
func (h *ChatHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GenerateJWT issues a bearer token for the chat API. Only mounted when
// API_AUTH_SECRET is configured; the shared secret doubles as the issuance
// credential (X-API-Secret header) and the signing key.
func (h *ChatHandler) GenerateJWT(c echo.Context) error {
	if c.Request().Header.Get("X-API-Secret") != h.cfg.AuthSecret {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(jwtExpiry)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
		Issuer:    "mistral-web",
		Subject:   "chat-api",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(h.cfg.AuthSecret))
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("failed to sign JWT", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token": tokenString,
		"type":  "Bearer",
	})
}

// JWTMiddleware validates bearer tokens issued by GenerateJWT.
func (h *ChatHandler) JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(h.cfg.AuthSecret), nil
		})
		if err != nil || !token.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		}

		return next(c)
	}
}
