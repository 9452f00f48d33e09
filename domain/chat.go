package domain

import "strings"

// Role tags a message for the chat-completion payload.
type Role string

const (
	SystemRole    Role = "system"
	UserRole      Role = "user"
	AssistantRole Role = "assistant"
)

// Message is one entry of the outbound chat-completion payload. It is never
// persisted; history is stored as prefixed turn strings (see Turn helpers).
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

const (
	userTurnPrefix      = "user: "
	assistantTurnPrefix = "assistant: "
)

// UserTurn formats a user message for history storage.
func UserTurn(content string) string {
	return userTurnPrefix + content
}

// AssistantTurn formats an assistant reply for history storage.
func AssistantTurn(content string) string {
	return assistantTurnPrefix + content
}

// ParseTurn splits a stored turn into its role and content. The second
// return is false when the turn carries neither recognized prefix; such
// entries are tolerated in history and skipped by the assembler.
func ParseTurn(turn string) (Message, bool) {
	switch {
	case strings.HasPrefix(turn, userTurnPrefix):
		return Message{Role: UserRole, Content: strings.TrimPrefix(turn, userTurnPrefix)}, true
	case strings.HasPrefix(turn, assistantTurnPrefix):
		return Message{Role: AssistantRole, Content: strings.TrimPrefix(turn, assistantTurnPrefix)}, true
	default:
		return Message{}, false
	}
}
