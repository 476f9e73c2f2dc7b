package ai

import (
	"context"
	"errors"

	"github.com/bilgisen/daoexplorer/internal/config"
)

// ErrEmptyCompletion is returned when a provider answers without text.
var ErrEmptyCompletion = errors.New("no content in response")

// TextGenerator produces a completion for a single-turn prompt.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// NewGenerator returns the configured provider, or nil when no credential
// is set. A nil generator puts the summarizer in degraded mode.
func NewGenerator(cfg *config.Config) TextGenerator {
	if !cfg.AIConfigured() {
		return nil
	}

	switch cfg.AIProvider {
	case config.ProviderGemini:
		return NewGeminiClient(cfg.AIApiKey, cfg.AIModel, cfg.AIBaseURL, cfg.AITimeout)
	default:
		return NewOpenAIClient(cfg.AIApiKey, cfg.AIModel, cfg.AIBaseURL, cfg.AITimeout)
	}
}
