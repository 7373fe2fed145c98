// Package orchestrator runs the agent pipeline: market data first, then
// fundamental and technical analysis concurrently, then the strategy
// synthesis over all three results.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/models"
	"github.com/ternarybob/consilium/internal/services/cache"
)

// MarketAgent produces the market data envelope. Its failure aborts the
// whole run since every downstream agent depends on price data.
type MarketAgent interface {
	Analyze(ctx context.Context, ticker common.Ticker) models.Envelope
}

// AnalysisAgent produces a fundamental or technical envelope. Failures
// degrade to error envelopes rather than aborting the run.
type AnalysisAgent interface {
	Analyze(ctx context.Context, ticker common.Ticker) models.Envelope
}

// StrategyAgent synthesizes the upstream envelopes into a recommendation.
type StrategyAgent interface {
	Synthesize(ctx context.Context, ticker common.Ticker, market, fundamental, technical models.Envelope) models.Envelope
}

// Pipeline coordinates the four agents for a single analysis run.
type Pipeline struct {
	market      MarketAgent
	fundamental AnalysisAgent
	technical   AnalysisAgent
	strategy    StrategyAgent
	cache       *cache.Service
	logger      arbor.ILogger
}

// NewPipeline creates a pipeline. The cache is optional; without it every
// run hits the upstream services.
func NewPipeline(market MarketAgent, fundamental, technical AnalysisAgent, strategy StrategyAgent, resultCache *cache.Service, logger arbor.ILogger) *Pipeline {
	return &Pipeline{
		market:      market,
		fundamental: fundamental,
		technical:   technical,
		strategy:    strategy,
		cache:       resultCache,
		logger:      logger,
	}
}

// Run executes the full pipeline for one ticker. A completed result from
// a recent run for the same ticker is served from cache.
func (p *Pipeline) Run(ctx context.Context, ticker common.Ticker) *models.AnalysisResult {
	cacheKey := "analysis:" + ticker.String()
	if p.cache != nil {
		if cached, ok := p.cache.Get(cacheKey); ok {
			if result, ok := cached.(*models.AnalysisResult); ok {
				p.logger.Debug().Str("ticker", ticker.String()).Msg("Serving cached analysis")
				return result
			}
		}
	}

	runID := common.NewAnalysisID()
	started := time.Now()
	p.logger.Info().Str("run_id", runID).Str("ticker", ticker.String()).Msg("Starting analysis")

	result := &models.AnalysisResult{
		RunID:     runID,
		Ticker:    ticker.String(),
		Agents:    make(map[string]models.Envelope),
		Timestamp: started,
	}

	market := p.market.Analyze(ctx, ticker)
	result.Agents[models.AgentMarketData] = market
	if snapshot, ok := market.Data.(*models.MarketSnapshot); ok && snapshot != nil {
		result.Name = snapshot.Name
	}
	if market.Status != models.StatusSuccess {
		result.Status = models.PipelineFailed
		result.Error = market.Error
		p.logger.Warn().Str("run_id", runID).Str("ticker", ticker.String()).
			Str("error", market.Error).Msg("Analysis failed, no market data")
		return result
	}

	var (
		wg          sync.WaitGroup
		fundamental models.Envelope
		technical   models.Envelope
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		fundamental = p.fundamental.Analyze(ctx, ticker)
	}()
	go func() {
		defer wg.Done()
		technical = p.technical.Analyze(ctx, ticker)
	}()
	wg.Wait()

	result.Agents[models.AgentFundamental] = fundamental
	result.Agents[models.AgentTechnical] = technical
	result.Agents[models.AgentStrategy] = p.strategy.Synthesize(ctx, ticker, market, fundamental, technical)
	result.Status = models.PipelineCompleted

	p.logger.Info().Str("run_id", runID).Str("ticker", ticker.String()).
		Str("duration", time.Since(started).String()).Msg("Analysis completed")

	if p.cache != nil {
		p.cache.Set(cacheKey, result)
	}
	return result
}
