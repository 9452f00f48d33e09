package usecase

import (
	"go.uber.org/zap"

	"github.com/satriahrh/mistral-web/utils/config"
	"github.com/satriahrh/mistral-web/utils/log"
)

// AvailableHistoryTokens returns how many tokens of conversation history fit
// in the context window after the system-message reserve, the response
// reserve, and the current prompt are set aside. Saturates at zero when the
// prompt alone exhausts the window.
func AvailableHistoryTokens(cfg *config.Config, promptTokens int) int {
	available := cfg.MaxContextWindow - (cfg.SystemMessageReserve + cfg.ResponseReserve + promptTokens)
	if available < 0 {
		return 0
	}
	return available
}

// AdjustMaxTokens clamps a caller-requested response cap into the configured
// [MinTokens, MaxTokens] range. This is the output-length cap sent upstream,
// not the history budget.
func AdjustMaxTokens(cfg *config.Config, requested int) int {
	switch {
	case requested < cfg.MinTokens:
		log.With(
			zap.Int("requested", requested),
			zap.Int("min_tokens", cfg.MinTokens),
		).Info("increasing max_tokens to configured minimum")
		return cfg.MinTokens
	case requested > cfg.MaxTokens:
		log.With(
			zap.Int("requested", requested),
			zap.Int("max_tokens", cfg.MaxTokens),
		).Info("capping max_tokens to configured maximum")
		return cfg.MaxTokens
	default:
		return requested
	}
}
