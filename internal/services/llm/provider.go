// Package llm provides narrative generation for analysis results using
// Google Gemini or Anthropic Claude, selected by configuration.
package llm

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/consilium/internal/common"
)

// ProviderType represents the AI provider type
type ProviderType string

const (
	// ProviderGemini uses Google Gemini API
	ProviderGemini ProviderType = "gemini"
	// ProviderClaude uses Anthropic Claude API
	ProviderClaude ProviderType = "claude"
)

// TextRequest represents a provider-agnostic text generation request
type TextRequest struct {
	Prompt            string
	SystemInstruction string
	Temperature       float32
	MaxTokens         int
}

// Provider defines the interface for AI text generation
type Provider interface {
	GenerateText(ctx context.Context, request *TextRequest) (string, error)
	Type() ProviderType
	Close() error
}

// ErrNoAPIKey indicates that no API key is configured for the selected
// provider. Callers degrade to deterministic insight text in that case.
var ErrNoAPIKey = fmt.Errorf("no API key configured for LLM provider")

// NewProvider creates the provider selected by llm.default_provider.
// Returns ErrNoAPIKey when the selected provider has no key configured.
func NewProvider(cfg *common.Config, logger arbor.ILogger) (Provider, error) {
	switch ProviderType(cfg.LLM.DefaultProvider) {
	case ProviderClaude:
		if cfg.Claude.APIKey == "" {
			return nil, ErrNoAPIKey
		}
		return NewClaudeProvider(&cfg.Claude, logger)
	case ProviderGemini, "":
		if cfg.Gemini.APIKey == "" {
			return nil, ErrNoAPIKey
		}
		return NewGeminiProvider(&cfg.Gemini, logger)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.LLM.DefaultProvider)
	}
}
