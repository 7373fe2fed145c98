// Package technical implements the technical analysis agent: indicator
// computation over daily candles, trend grading, and signal generation.
package technical

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/eodhd"
	"github.com/ternarybob/consilium/internal/models"
	"github.com/ternarybob/consilium/internal/services/llm"
)

// minimumCandles is the least history that produces a meaningful analysis.
const minimumCandles = 30

// HistorySource provides daily candles for a ticker, oldest first.
type HistorySource interface {
	History(ctx context.Context, ticker common.Ticker) (eodhd.EODResponse, error)
}

// Service is the technical analysis agent.
type Service struct {
	source  HistorySource
	insight llm.InsightGenerator
	logger  arbor.ILogger
}

// NewService creates a technical analysis service.
func NewService(source HistorySource, insight llm.InsightGenerator, logger arbor.ILogger) *Service {
	return &Service{
		source:  source,
		insight: insight,
		logger:  logger,
	}
}

// Analyze produces the technical envelope for a ticker. Failures are
// reported as error envelopes, the pipeline degrades rather than aborts.
func (s *Service) Analyze(ctx context.Context, ticker common.Ticker) models.Envelope {
	history, err := s.source.History(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker.String()).Msg("Price history fetch failed")
		return models.NewErrorEnvelope(models.AgentTechnical, err)
	}
	if len(history) < minimumCandles {
		return models.NewErrorEnvelope(models.AgentTechnical,
			fmt.Errorf("insufficient price history for %s: %d candles, need %d", ticker.String(), len(history), minimumCandles))
	}

	profile, signalStrength := Profile(ticker, history)

	fallback := fmt.Sprintf(
		"%s technical setup: trend %s, overall signal %s with %d bullish and %d bearish signals. RSI %s, volatility %s.",
		profile.Ticker, profile.Trend.Direction, profile.Signals.Overall,
		len(profile.Signals.Bullish), len(profile.Signals.Bearish),
		interpretRSI(profile.Indicators.RSI), profile.Volatility,
	)
	prompt := fmt.Sprintf(
		"Summarize the technical setup of %s at price %.2f: trend %s (short %s, medium %s, long %s), overall signal %s, bullish signals [%s], bearish signals [%s], RSI %s, MACD %s, volume %s, volatility %s.",
		profile.Ticker, profile.Price, profile.Trend.Direction,
		profile.Trend.ShortTerm, profile.Trend.MediumTerm, profile.Trend.LongTerm,
		profile.Signals.Overall,
		strings.Join(profile.Signals.Bullish, ", "), strings.Join(profile.Signals.Bearish, ", "),
		interpretRSI(profile.Indicators.RSI),
		interpretMACD(profile.Indicators.MACD, profile.Indicators.MACDSignal, profile.Indicators.MACDHist),
		profile.Volume.Signal, profile.Volatility,
	)
	insight := s.insight.GenerateInsight(ctx, prompt, fallback)

	return models.NewEnvelope(models.AgentTechnical, profile, insight, confidence(signalStrength))
}

// Profile computes the full technical profile from price history. The
// second return value is the net signal strength used for confidence.
func Profile(ticker common.Ticker, history eodhd.EODResponse) (*models.TechnicalProfile, int) {
	price := history[len(history)-1].Close
	indicators := computeIndicators(history)
	trend, _ := analyzeTrend(history, price, indicators)
	signals, strength := generateSignals(price, indicators)

	return &models.TechnicalProfile{
		Ticker:     ticker.String(),
		Price:      price,
		Indicators: indicators,
		Trend:      trend,
		Signals:    signals,
		Levels:     pivotLevels(history[len(history)-1]),
		Volume:     analyzeVolume(history),
		Volatility: interpretATR(indicators.ATR, price),
	}, strength
}
