// Package app wires configuration, logging, the data client, the agent
// services, and the HTTP handlers into one application object.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/eodhd"
	"github.com/ternarybob/consilium/internal/handlers"
	"github.com/ternarybob/consilium/internal/orchestrator"
	"github.com/ternarybob/consilium/internal/services/cache"
	"github.com/ternarybob/consilium/internal/services/fundamental"
	"github.com/ternarybob/consilium/internal/services/llm"
	"github.com/ternarybob/consilium/internal/services/market"
	"github.com/ternarybob/consilium/internal/services/strategy"
	"github.com/ternarybob/consilium/internal/services/technical"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Data layer
	DataClient   *eodhd.Client
	CacheService *cache.Service

	// LLM narrative layer
	LLMProvider    llm.Provider
	InsightService *llm.Service

	// Agent services
	MarketService      *market.Service
	FundamentalService *fundamental.Service
	TechnicalService   *technical.Service
	StrategyService    *strategy.Service
	Pipeline           *orchestrator.Pipeline

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	QuoteHandler    *handlers.QuoteHandler
	AnalysisHandler *handlers.AnalysisHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	common.SetDefaultExchange(cfg.Markets.DefaultExchange)

	app.DataClient = eodhd.NewClient(cfg.EODHD.APIKey,
		eodhd.WithBaseURL(cfg.EODHD.BaseURL),
		eodhd.WithHTTPClient(&http.Client{Timeout: cfg.EODHD.RequestTimeout}),
		eodhd.WithRateLimit(cfg.EODHD.RateLimit),
		eodhd.WithLogger(logger),
	)

	app.CacheService = cache.NewService(cacheTTL(cfg), cfg.Cache.MaxEntries, logger)
	if cfg.Cache.SweepSchedule != "" {
		if err := app.CacheService.StartSweeper(cfg.Cache.SweepSchedule); err != nil {
			logger.Warn().Err(err).Str("schedule", cfg.Cache.SweepSchedule).
				Msg("Cache sweeper not started")
		}
	}

	// An unconfigured LLM is not fatal, agents fall back to deterministic
	// insight text.
	provider, err := llm.NewProvider(cfg, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("LLM provider unavailable, using fallback insights")
	}
	app.LLMProvider = provider
	app.InsightService = llm.NewService(provider, logger)

	source := market.NewCachedSource(app.DataClient, app.CacheService)
	app.MarketService = market.NewService(source, app.InsightService, cfg.EODHD.HistoryDays, logger)
	app.FundamentalService = fundamental.NewService(source, app.InsightService, logger)
	app.TechnicalService = technical.NewService(app.MarketService, app.InsightService, logger)
	app.StrategyService = strategy.NewService(app.InsightService, logger)

	app.Pipeline = orchestrator.NewPipeline(
		app.MarketService,
		app.FundamentalService,
		app.TechnicalService,
		app.StrategyService,
		app.CacheService,
		logger,
	)

	app.APIHandler = handlers.NewAPIHandler(string(cfg.LLM.DefaultProvider), provider != nil)
	app.QuoteHandler = handlers.NewQuoteHandler(app.MarketService)
	app.AnalysisHandler = handlers.NewAnalysisHandler(app.Pipeline)

	logger.Info().
		Str("environment", cfg.Environment).
		Str("exchange", common.DefaultExchange).
		Str("llm", string(cfg.LLM.DefaultProvider)).
		Msg("Application initialized")

	return app, nil
}

// Close releases application resources.
func (a *App) Close(ctx context.Context) error {
	a.CacheService.StopSweeper()
	if a.LLMProvider != nil {
		if err := a.LLMProvider.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("LLM provider close failed")
		}
	}
	a.Logger.Info().Msg("Application stopped")
	return nil
}

func cacheTTL(cfg *common.Config) time.Duration {
	if d, err := time.ParseDuration(cfg.Cache.TTL); err == nil && d > 0 {
		return d
	}
	return cache.DefaultTTL
}
