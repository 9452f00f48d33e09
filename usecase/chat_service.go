package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/satriahrh/mistral-web/domain"
	"github.com/satriahrh/mistral-web/utils/config"
	"github.com/satriahrh/mistral-web/utils/log"
)

// ReplyTopic is the broker topic chat replies are published on. Replies for
// every session share one stream; watchers filter by the session id carried
// in the event payload.
const ReplyTopic = "chat.replies"

const promptSuffix = "\n\nPlease provide a detailed and comprehensive answer."

// ChatService orchestrates one request/response turn: it owns the history
// bookkeeping around the generation call and applies the token budget.
type ChatService struct {
	cfg     *config.Config
	llm     domain.Llm
	history domain.HistoryStore
	broker  domain.MessageBroker
}

// NewChatService wires the turn handler. broker may be nil when no reply
// fan-out is wanted (tests, CLI usage).
func NewChatService(cfg *config.Config, llm domain.Llm, history domain.HistoryStore, broker domain.MessageBroker) *ChatService {
	return &ChatService{
		cfg:     cfg,
		llm:     llm,
		history: history,
		broker:  broker,
	}
}

// TurnResult is the outcome of a completed chat turn.
type TurnResult struct {
	Response  string
	SessionID string
}

// Execute runs one chat turn. An empty sessionID starts a new session. The
// incoming user turn is appended to history before the generation call and
// is NOT rolled back when generation fails, so a failed turn leaves a user
// message with no paired reply in the session transcript.
//
// The store lock is only held by Append/Snapshot; the generation call runs
// on a private snapshot, so concurrent sessions never block each other on
// network IO. Two concurrent turns on the same session may interleave their
// history entries in completion order.
func (s *ChatService) Execute(ctx context.Context, sessionID, message string, requestedMaxTokens int) (*TurnResult, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	ctx = context.WithValue(ctx, "session_id", sessionID)

	// Nudge the model towards detailed answers. The raw message is what
	// goes to history; the engineered prompt is what goes upstream.
	prompt := message + promptSuffix

	s.history.Append(sessionID, domain.UserTurn(message))
	snapshot := s.history.Snapshot(sessionID)

	adjustedMaxTokens := AdjustMaxTokens(s.cfg, requestedMaxTokens)
	promptTokens := EstimateTokens(prompt)
	availableHistoryTokens := AvailableHistoryTokens(s.cfg, promptTokens)

	log.WithCtx(ctx).Info("generating response",
		zap.Int("max_tokens", adjustedMaxTokens),
		zap.Int("available_history_tokens", availableHistoryTokens),
		zap.Int("history_turns", len(snapshot)))

	messages := Assemble(prompt, snapshot, availableHistoryTokens, adjustedMaxTokens)

	reply, err := s.llm.Generate(ctx, messages, domain.GenerateParams{
		Temperature: s.cfg.Temperature,
		TopP:        s.cfg.TopP,
		MaxTokens:   adjustedMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	s.history.Append(sessionID, domain.AssistantTurn(reply))
	s.publishReply(ctx, sessionID, reply)

	return &TurnResult{Response: reply, SessionID: sessionID}, nil
}

// publishReply fans the reply out to websocket watchers. Failures here never
// fail the turn; the caller already has the reply.
func (s *ChatService) publishReply(ctx context.Context, sessionID, reply string) {
	if s.broker == nil {
		return
	}

	event := domain.ReplyEvent{
		SessionID: sessionID,
		Response:  reply,
		Timestamp: time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.WithCtx(ctx).Error("failed to marshal reply event", zap.Error(err))
		return
	}

	if err := s.broker.Publish(ctx, ReplyTopic, "", payload); err != nil {
		log.WithCtx(ctx).Error("failed to publish reply event", zap.Error(err))
	}
}
