package websocket

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/satriahrh/mistral-web/domain"
	"github.com/satriahrh/mistral-web/usecase"
	"github.com/satriahrh/mistral-web/utils/log"
)

// Server carries chat turns over websocket connections: each inbound text
// message is one ChatRequest, answered in place, and replies published on
// the broker are fanned out to every client watching the same session.
type Server struct {
	upgrader         websocket.Upgrader
	chatService      *usecase.ChatService
	broker           domain.MessageBroker
	hub              *Hub
	defaultMaxTokens int
}

type chatTurnRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	MaxTokens *int   `json:"max_tokens,omitempty"`
}

type chatTurnResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewServer(chatService *usecase.ChatService, broker domain.MessageBroker, defaultMaxTokens int) *Server {
	server := &Server{
		upgrader:         websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		chatService:      chatService,
		broker:           broker,
		hub:              NewHub(),
		defaultMaxTokens: defaultMaxTokens,
	}

	go server.startReplyListener()

	return server
}

func (s *Server) RunWebsocketHub() {
	s.hub.Run()
}

func (s *Server) GetHub() *Hub {
	return s.hub
}

// startReplyListener fans chat replies out to clients watching the session.
func (s *Server) startReplyListener() {
	ctx := context.Background()

	messageChan, err := s.broker.Subscribe(ctx, usecase.ReplyTopic, "")
	if err != nil {
		log.WithCtx(ctx).Error("Failed to subscribe to reply topic", zap.Error(err))
		return
	}

	log.WithCtx(ctx).Info("WebSocket server listening for chat replies")

	for {
		select {
		case msg, ok := <-messageChan:
			if !ok {
				return
			}

			var event domain.ReplyEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				log.WithCtx(ctx).Error("Failed to unmarshal reply event", zap.Error(err))
				continue
			}

			wsMessage := map[string]interface{}{
				"type":       "reply",
				"session_id": event.SessionID,
				"response":   event.Response,
				"timestamp":  event.Timestamp,
			}
			jsonData, err := json.Marshal(wsMessage)
			if err != nil {
				log.WithCtx(ctx).Error("Failed to marshal WebSocket message", zap.Error(err))
				continue
			}

			s.hub.SendToSession(event.SessionID, jsonData)

		case <-ctx.Done():
			return
		}
	}
}

// handleMessage runs one chat turn for an inbound websocket message.
func (s *Server) handleMessage(client *Client, raw []byte) {
	var req chatTurnRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		s.sendError(client, "invalid request payload")
		return
	}
	if req.Message == "" {
		s.sendError(client, "message is required")
		return
	}

	maxTokens := s.defaultMaxTokens
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}

	// Turns run in their own goroutine so a slow generation does not
	// stall the read pump.
	go func() {
		result, err := s.chatService.Execute(client.Context(), req.SessionID, req.Message, maxTokens)
		if err != nil {
			log.WithCtx(client.Context()).Error("websocket chat turn failed", zap.Error(err))
			s.sendError(client, err.Error())
			return
		}

		client.SetSessionID(result.SessionID)

		payload, err := json.Marshal(chatTurnResponse{
			Response:  result.Response,
			SessionID: result.SessionID,
		})
		if err != nil {
			log.WithCtx(client.Context()).Error("Failed to marshal response", zap.Error(err))
			return
		}
		client.SendMessage(payload)
	}()
}

func (s *Server) sendError(client *Client, detail string) {
	payload, err := json.Marshal(errorResponse{Error: detail})
	if err != nil {
		return
	}
	client.SendMessage(payload)
}
