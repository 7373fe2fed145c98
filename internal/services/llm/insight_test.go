package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stubProvider returns canned responses for insight tests.
type stubProvider struct {
	text  string
	errs  []error
	calls int
}

func (p *stubProvider) GenerateText(ctx context.Context, req *TextRequest) (string, error) {
	p.calls++
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		if err != nil {
			return "", err
		}
	}
	return p.text, nil
}

func (p *stubProvider) Type() ProviderType { return ProviderGemini }
func (p *stubProvider) Close() error       { return nil }

func TestGenerateInsightNoProvider(t *testing.T) {
	svc := NewService(nil, nil)
	got := svc.GenerateInsight(context.Background(), "prompt", "fallback text")
	assert.Equal(t, "fallback text", got)
}

func TestGenerateInsightSuccess(t *testing.T) {
	provider := &stubProvider{text: "generated narrative"}
	svc := NewService(provider, nil)
	got := svc.GenerateInsight(context.Background(), "prompt", "fallback")
	assert.Equal(t, "generated narrative", got)
	assert.Equal(t, 1, provider.calls)
}

func TestGenerateInsightRetriesRateLimit(t *testing.T) {
	provider := &stubProvider{
		text: "eventual success",
		errs: []error{errors.New("429 rate_limit exceeded"), nil},
	}
	svc := NewService(provider, nil)
	svc.retry = &RetryConfig{
		MaxRetries:        2,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}

	got := svc.GenerateInsight(context.Background(), "prompt", "fallback")
	assert.Equal(t, "eventual success", got)
	assert.Equal(t, 2, provider.calls)
}

func TestGenerateInsightTerminalErrorFallsBack(t *testing.T) {
	provider := &stubProvider{
		errs: []error{errors.New("invalid request")},
	}
	svc := NewService(provider, nil)
	got := svc.GenerateInsight(context.Background(), "prompt", "fallback")
	assert.Equal(t, "fallback", got)
	assert.Equal(t, 1, provider.calls, "terminal errors should not be retried")
}

func TestIsRateLimitError(t *testing.T) {
	assert.True(t, IsRateLimitError(errors.New("Error 429: too many requests")))
	assert.True(t, IsRateLimitError(errors.New("RESOURCE_EXHAUSTED: quota exceeded")))
	assert.False(t, IsRateLimitError(errors.New("connection refused")))
	assert.False(t, IsRateLimitError(nil))
}

func TestExtractRetryDelay(t *testing.T) {
	err := errors.New("Error 429, Message: quota hit. Please retry in 45.387061394s., Status: RESOURCE_EXHAUSTED")
	delay := ExtractRetryDelay(err)
	assert.InDelta(t, 45.39, delay.Seconds(), 0.01)

	assert.Equal(t, time.Duration(0), ExtractRetryDelay(errors.New("no delay here")))
}

func TestCalculateBackoff(t *testing.T) {
	cfg := NewDefaultRetryConfig()

	first := cfg.CalculateBackoff(0, 0)
	assert.Equal(t, DefaultInitialBackoff, first)

	second := cfg.CalculateBackoff(1, 0)
	assert.Equal(t, 2*DefaultInitialBackoff, second)

	capped := cfg.CalculateBackoff(10, 0)
	assert.Equal(t, DefaultMaxBackoff, capped)

	withAPI := cfg.CalculateBackoff(0, 10*time.Second)
	assert.Equal(t, 11*time.Second, withAPI)
}
