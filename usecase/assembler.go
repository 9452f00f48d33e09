package usecase

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/satriahrh/mistral-web/domain"
	"github.com/satriahrh/mistral-web/utils/log"
)

const systemPromptFormat = "You are a helpful AI assistant. When responding to the user, " +
	"please be thorough and detailed in your explanations. Aim to use close to the maximum " +
	"token length of %d tokens when appropriate for the question."

// Assemble builds the outbound message list for one turn: a system message
// hinting the response budget, as much recent history as fits, and the
// current prompt. Pure; the history slice is a snapshot owned by the caller.
//
// History is truncated most-recent-first: walking from the newest turn
// backwards, the walk stops at the first turn whose estimate would push the
// running total past availableHistoryTokens, so older turns are dropped
// first when the budget is tight. The retained suffix is emitted back in
// chronological order. Turns carrying neither the "user: " nor the
// "assistant: " prefix are tolerated and skipped.
func Assemble(prompt string, history []string, availableHistoryTokens, adjustedMaxTokens int) []domain.Message {
	messages := []domain.Message{
		{
			Role:    domain.SystemRole,
			Content: fmt.Sprintf(systemPromptFormat, adjustedMaxTokens),
		},
	}

	totalHistoryTokens := 0
	retained := make([]string, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		turnTokens := EstimateTokens(history[i])
		if totalHistoryTokens+turnTokens > availableHistoryTokens {
			log.With(
				zap.Int("available", availableHistoryTokens),
				zap.Int("needed", totalHistoryTokens+turnTokens),
			).Warn("conversation history truncated due to token limit")
			break
		}
		totalHistoryTokens += turnTokens
		retained = append(retained, history[i])
	}

	// retained is newest-first; emit oldest-first.
	for i := len(retained) - 1; i >= 0; i-- {
		msg, ok := domain.ParseTurn(retained[i])
		if !ok {
			continue
		}
		messages = append(messages, msg)
	}

	messages = append(messages, domain.Message{
		Role:    domain.UserRole,
		Content: prompt,
	})

	return messages
}
