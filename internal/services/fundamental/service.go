// Package fundamental implements the fundamental analysis agent: financial
// ratios pulled from company fundamentals, graded into qualitative labels.
package fundamental

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/eodhd"
	"github.com/ternarybob/consilium/internal/models"
	"github.com/ternarybob/consilium/internal/services/llm"
)

// FundamentalsSource provides company fundamentals for a symbol.
type FundamentalsSource interface {
	GetFundamentals(ctx context.Context, symbol string) (*eodhd.FundamentalsResponse, error)
}

// Service is the fundamental analysis agent.
type Service struct {
	source  FundamentalsSource
	insight llm.InsightGenerator
	logger  arbor.ILogger
}

// NewService creates a fundamental analysis service.
func NewService(source FundamentalsSource, insight llm.InsightGenerator, logger arbor.ILogger) *Service {
	return &Service{
		source:  source,
		insight: insight,
		logger:  logger,
	}
}

// Analyze produces the fundamental envelope for a ticker. Failures are
// reported as error envelopes, the pipeline degrades rather than aborts.
func (s *Service) Analyze(ctx context.Context, ticker common.Ticker) models.Envelope {
	fundamentals, err := s.source.GetFundamentals(ctx, ticker.EODHDSymbol())
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker.String()).Msg("Fundamentals fetch failed")
		return models.NewErrorEnvelope(models.AgentFundamental, err)
	}

	profile := buildProfile(ticker, fundamentals)

	fallback := fmt.Sprintf(
		"%s fundamentals: profitability %s, valuation %s, financial health %s, growth %s.",
		profile.Ticker, profile.Assessments.Profitability, profile.Assessments.Valuation,
		profile.Assessments.FinancialHealth, profile.Assessments.Growth,
	)
	prompt := fmt.Sprintf(
		"Summarize the fundamentals of %s (%s / %s): profitability %s, valuation %s, financial health %s, growth %s. PE %s, ROE %s, profit margin %s, revenue growth %s, debt/equity %s.",
		profile.Ticker, profile.Sector, profile.Industry,
		profile.Assessments.Profitability, profile.Assessments.Valuation,
		profile.Assessments.FinancialHealth, profile.Assessments.Growth,
		formatMetric(profile.Metrics.PERatio), formatMetric(profile.Metrics.ReturnOnEquity),
		formatMetric(profile.Metrics.ProfitMargin), formatMetric(profile.Metrics.RevenueGrowth),
		formatMetric(profile.Metrics.DebtToEquity),
	)
	insight := s.insight.GenerateInsight(ctx, prompt, fallback)

	return models.NewEnvelope(models.AgentFundamental, profile, insight, Confidence(profile.Metrics))
}

// buildProfile maps upstream fundamentals onto the metrics model and
// grades them.
func buildProfile(ticker common.Ticker, f *eodhd.FundamentalsResponse) *models.FundamentalProfile {
	profile := &models.FundamentalProfile{
		Ticker: ticker.String(),
	}
	if f == nil {
		profile.Assessments = Assess(profile.Metrics)
		return profile
	}

	if f.General != nil {
		profile.Sector = f.General.Sector
		profile.Industry = f.General.Industry
	}

	if h := f.Highlights; h != nil {
		profile.Metrics.MarketCap = optional(h.MarketCapitalization)
		profile.Metrics.PERatio = optional(h.PERatio)
		profile.Metrics.PEGRatio = optional(h.PEGRatio)
		profile.Metrics.ReturnOnEquity = optional(h.ReturnOnEquityTTM)
		profile.Metrics.ProfitMargin = optional(h.ProfitMargin)
		profile.Metrics.OperatingMargin = optional(h.OperatingMarginTTM)
		profile.Metrics.RevenueGrowth = optional(h.QuarterlyRevenueGrowthYOY)
		profile.Metrics.EarningsGrowth = optional(h.QuarterlyEarningsGrowthYOY)
		profile.Metrics.DividendYield = optional(h.DividendYield)
		profile.Metrics.DividendShare = optional(h.DividendShare)
		profile.Metrics.EPS = optional(h.EarningsShare)
		profile.Metrics.BookValue = optional(h.BookValue)
	}

	if v := f.Valuation; v != nil {
		profile.Metrics.PriceToBook = optional(v.PriceBookMRQ)
		if profile.Metrics.PERatio == nil {
			profile.Metrics.PERatio = optional(v.TrailingPE)
		}
	}

	profile.Metrics.CurrentRatio = f.Financials.CurrentRatio()
	profile.Metrics.DebtToEquity = f.Financials.DebtToEquity()
	profile.Metrics.FreeCashFlow = f.Financials.FreeCashFlow()

	profile.Dividends = models.DividendProfile{
		Yield:    profile.Metrics.DividendYield,
		PerShare: profile.Metrics.DividendShare,
		IsPayer:  profile.Metrics.DividendYield != nil && *profile.Metrics.DividendYield > 0,
	}

	profile.Assessments = Assess(profile.Metrics)
	return profile
}

// optional treats the upstream zero value as missing. EODHD leaves
// absent ratios at zero, which would otherwise read as a real value.
func optional(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func formatMetric(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *p)
}
