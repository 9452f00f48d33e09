package llm

import (
	"context"
	"fmt"

	"github.com/satriahrh/mistral-web/domain"
	"github.com/satriahrh/mistral-web/utils/config"
)

// New selects the generation provider from configuration. "mistral" is the
// default and speaks the OpenAI-compatible protocol of a local mistral.rs
// server; "gemini" routes the same message payloads to Gemini.
func New(ctx context.Context, cfg *config.Config) (domain.Llm, error) {
	switch cfg.Provider {
	case "mistral":
		return NewMistralClient(cfg.ServerURL), nil
	case "gemini":
		return NewGeminiClient(ctx)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
