package domain

import "context"

// Llm abstracts any chat-completion provider.
type Llm interface {
	// Generate sends the assembled message list and returns the model's
	// reply text. A single attempt, no retries; failures are one of the
	// typed errors in errors.go.
	Generate(ctx context.Context, messages []Message, params GenerateParams) (string, error)
}

// GenerateParams carries the sampling parameters and the output-length cap
// for one generation call. MaxTokens is the clamped response cap, not the
// history budget.
type GenerateParams struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}
