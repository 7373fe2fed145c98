package llm

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"
)

// analystInstruction frames every insight request.
const analystInstruction = "You are a concise equity analyst. " +
	"Summarize the provided analysis data in 2-3 sentences of plain prose. " +
	"State the key takeaways only, no preamble and no disclaimers."

// InsightGenerator produces a narrative insight for an agent's data summary.
// Implementations must never fail the analysis: when generation is not
// possible the fallback text is returned instead.
type InsightGenerator interface {
	GenerateInsight(ctx context.Context, prompt string, fallback string) string
}

// Service wraps a Provider with rate limit retries and deterministic
// fallback. A Service with a nil provider is valid and always returns
// the fallback, which keeps the pipeline usable without any API key.
type Service struct {
	provider Provider
	retry    *RetryConfig
	logger   arbor.ILogger
}

// NewService creates an insight service. provider may be nil.
func NewService(provider Provider, logger arbor.ILogger) *Service {
	return &Service{
		provider: provider,
		retry:    NewDefaultRetryConfig(),
		logger:   logger,
	}
}

// GenerateInsight asks the provider to narrate the prompt. Rate limited
// calls are retried with backoff, any terminal failure degrades to the
// fallback text.
func (s *Service) GenerateInsight(ctx context.Context, prompt string, fallback string) string {
	if s.provider == nil {
		return fallback
	}

	request := &TextRequest{
		Prompt:            prompt,
		SystemInstruction: analystInstruction,
	}

	var lastErr error
	for attempt := 0; attempt <= s.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := s.retry.CalculateBackoff(attempt-1, ExtractRetryDelay(lastErr))
			if s.logger != nil {
				s.logger.Warn().
					Int("attempt", attempt).
					Dur("backoff", backoff).
					Msg("LLM rate limited, backing off")
			}
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return fallback
			}
		}

		text, err := s.provider.GenerateText(ctx, request)
		if err == nil {
			return text
		}
		lastErr = err

		if !IsRateLimitError(err) {
			break
		}
	}

	if s.logger != nil && lastErr != nil {
		s.logger.Warn().
			Err(lastErr).
			Str("provider", string(s.provider.Type())).
			Msg("Insight generation failed, using deterministic summary")
	}
	return fallback
}
