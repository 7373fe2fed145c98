package orchestrator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/models"
	"github.com/ternarybob/consilium/internal/services/cache"
)

type fakeAgent struct {
	name     string
	envelope models.Envelope
	calls    atomic.Int64
}

func (f *fakeAgent) Analyze(_ context.Context, _ common.Ticker) models.Envelope {
	f.calls.Add(1)
	return f.envelope
}

type fakeStrategy struct {
	score int
	calls atomic.Int64
}

func (f *fakeStrategy) Synthesize(_ context.Context, ticker common.Ticker, _, _, _ models.Envelope) models.Envelope {
	f.calls.Add(1)
	rec := &models.Recommendation{
		Ticker:       ticker.String(),
		Action:       "Hold",
		OverallScore: f.score,
	}
	return models.NewEnvelope(models.AgentStrategy, rec, "", 0.8)
}

func successAgents(score int) (*fakeAgent, *fakeAgent, *fakeAgent, *fakeStrategy) {
	market := &fakeAgent{name: models.AgentMarketData,
		envelope: models.NewEnvelope(models.AgentMarketData,
			&models.MarketSnapshot{Name: "Reliance Industries Limited", CurrentPrice: 100}, "", 0.85)}
	fundamental := &fakeAgent{name: models.AgentFundamental,
		envelope: models.NewEnvelope(models.AgentFundamental, &models.FundamentalProfile{}, "", 0.9)}
	technical := &fakeAgent{name: models.AgentTechnical,
		envelope: models.NewEnvelope(models.AgentTechnical, &models.TechnicalProfile{}, "", 0.7)}
	return market, fundamental, technical, &fakeStrategy{score: score}
}

func mustTicker(t *testing.T, raw string) common.Ticker {
	t.Helper()
	require.True(t, common.ValidateTicker(raw))
	return common.ParseTicker(raw)
}

func TestRunCompletes(t *testing.T) {
	market, fundamental, technical, strategy := successAgents(70)
	p := NewPipeline(market, fundamental, technical, strategy, nil, common.GetLogger())

	result := p.Run(context.Background(), mustTicker(t, "RELIANCE.NSE"))

	require.Equal(t, models.PipelineCompleted, result.Status)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "NSE:RELIANCE", result.Ticker)
	assert.Equal(t, "Reliance Industries Limited", result.Name)
	assert.Len(t, result.Agents, 4)
	assert.Equal(t, models.StatusSuccess, result.Agents[models.AgentStrategy].Status)
	assert.Equal(t, int64(1), strategy.calls.Load())
}

func TestRunMarketFailureAborts(t *testing.T) {
	market := &fakeAgent{envelope: models.NewErrorEnvelope(models.AgentMarketData, errors.New("no price data"))}
	_, fundamental, technical, strategy := successAgents(70)
	p := NewPipeline(market, fundamental, technical, strategy, nil, common.GetLogger())

	result := p.Run(context.Background(), mustTicker(t, "RELIANCE.NSE"))

	require.Equal(t, models.PipelineFailed, result.Status)
	assert.Equal(t, "no price data", result.Error)
	assert.Len(t, result.Agents, 1)
	assert.Equal(t, int64(0), fundamental.calls.Load())
	assert.Equal(t, int64(0), technical.calls.Load())
	assert.Equal(t, int64(0), strategy.calls.Load())
}

func TestRunDegradedAgentsStillComplete(t *testing.T) {
	market, _, _, strategy := successAgents(50)
	fundamental := &fakeAgent{envelope: models.NewErrorEnvelope(models.AgentFundamental, errors.New("fundamentals unavailable"))}
	technical := &fakeAgent{envelope: models.NewErrorEnvelope(models.AgentTechnical, errors.New("insufficient price history"))}
	p := NewPipeline(market, fundamental, technical, strategy, nil, common.GetLogger())

	result := p.Run(context.Background(), mustTicker(t, "TCS.NSE"))

	require.Equal(t, models.PipelineCompleted, result.Status)
	assert.Equal(t, models.StatusError, result.Agents[models.AgentFundamental].Status)
	assert.Equal(t, models.StatusError, result.Agents[models.AgentTechnical].Status)
	assert.Equal(t, models.StatusSuccess, result.Agents[models.AgentStrategy].Status)
}

func TestRunCachesCompletedResults(t *testing.T) {
	market, fundamental, technical, strategy := successAgents(70)
	resultCache := cache.NewService(time.Minute, 16, common.GetLogger())
	p := NewPipeline(market, fundamental, technical, strategy, resultCache, common.GetLogger())

	ticker := mustTicker(t, "RELIANCE.NSE")
	first := p.Run(context.Background(), ticker)
	second := p.Run(context.Background(), ticker)

	assert.Equal(t, first.RunID, second.RunID)
	assert.Equal(t, int64(1), market.calls.Load())
	assert.Equal(t, int64(1), strategy.calls.Load())
}

func TestRunDoesNotCacheFailures(t *testing.T) {
	market := &fakeAgent{envelope: models.NewErrorEnvelope(models.AgentMarketData, errors.New("no price data"))}
	_, fundamental, technical, strategy := successAgents(70)
	resultCache := cache.NewService(time.Minute, 16, common.GetLogger())
	p := NewPipeline(market, fundamental, technical, strategy, resultCache, common.GetLogger())

	ticker := mustTicker(t, "RELIANCE.NSE")
	p.Run(context.Background(), ticker)
	p.Run(context.Background(), ticker)

	assert.Equal(t, int64(2), market.calls.Load())
}
