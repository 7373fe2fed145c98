// Package market implements the market data agent: current pricing,
// 52-week range position, and trailing returns for a ticker.
package market

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/eodhd"
	"github.com/ternarybob/consilium/internal/models"
	"github.com/ternarybob/consilium/internal/services/llm"
)

// Return window lengths in trading days.
const (
	windowOneMonth   = 22
	windowThreeMonth = 66
	windowSixMonth   = 132
)

// snapshotConfidence reflects that market data is factual rather than
// inferred, quotes can still be delayed.
const snapshotConfidence = 0.85

// Service is the market data agent.
type Service struct {
	source      DataSource
	insight     llm.InsightGenerator
	logger      arbor.ILogger
	historyDays int
}

// NewService creates a market data service.
func NewService(source DataSource, insight llm.InsightGenerator, historyDays int, logger arbor.ILogger) *Service {
	if historyDays <= 0 {
		historyDays = 365
	}
	return &Service{
		source:      source,
		insight:     insight,
		logger:      logger,
		historyDays: historyDays,
	}
}

// History fetches daily candles for the configured window, oldest first.
func (s *Service) History(ctx context.Context, ticker common.Ticker) (eodhd.EODResponse, error) {
	symbol := ticker.EODHDSymbol()
	from := time.Now().AddDate(0, 0, -s.historyDays)
	return withRetry(ctx, s.logger, "eod:"+symbol, func() (eodhd.EODResponse, error) {
		return s.source.GetEOD(ctx, symbol, eodhd.WithDateRange(from, time.Now()), eodhd.WithOrder("a"))
	})
}

// Quote fetches a delayed real-time quote for the ticker.
func (s *Service) Quote(ctx context.Context, ticker common.Ticker) (*models.Quote, error) {
	symbol := ticker.EODHDSymbol()
	rt, err := withRetry(ctx, s.logger, "quote:"+symbol, func() (*eodhd.RealTimeQuote, error) {
		return s.source.GetRealTimeQuote(ctx, symbol)
	})
	if err != nil {
		return nil, err
	}
	quote := &models.Quote{
		Ticker:        ticker.String(),
		Price:         rt.Close,
		PreviousClose: rt.PreviousClose,
		Change:        rt.Change,
		ChangePercent: rt.ChangePercent,
		Volume:        rt.Volume,
		Timestamp:     rt.Timestamp,
	}
	// Best effort, a quote without a company name is still a quote.
	if fundamentals, err := s.source.GetFundamentals(ctx, symbol); err == nil && fundamentals != nil && fundamentals.General != nil {
		quote.Name = fundamentals.General.Name
	}
	return quote, nil
}

// Analyze produces the market data envelope for a ticker. An error here
// means price data is unavailable and the whole analysis cannot proceed.
func (s *Service) Analyze(ctx context.Context, ticker common.Ticker) models.Envelope {
	snapshot, err := s.Snapshot(ctx, ticker)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker.String()).Msg("Market data fetch failed")
		return models.NewErrorEnvelope(models.AgentMarketData, err)
	}

	fallback := fmt.Sprintf(
		"%s trades at %.2f (%+.2f%% on the day), %.0f%% of the way through its 52-week range. 1M return %+.1f%%, 1Y return %+.1f%%.",
		snapshot.Ticker, snapshot.CurrentPrice, snapshot.ChangePercent, snapshot.RangePosition,
		snapshot.Returns["1M"], snapshot.Returns["1Y"],
	)
	prompt := fmt.Sprintf(
		"Summarize the market position of %s: price %.2f, day change %+.2f%%, 52-week range %.2f to %.2f (position %.0f%%), returns 1M %+.1f%% 3M %+.1f%% 6M %+.1f%% 1Y %+.1f%% YTD %+.1f%%.",
		snapshot.Ticker, snapshot.CurrentPrice, snapshot.ChangePercent,
		snapshot.FiftyTwoWeekLow, snapshot.FiftyTwoWeekHigh, snapshot.RangePosition,
		snapshot.Returns["1M"], snapshot.Returns["3M"], snapshot.Returns["6M"],
		snapshot.Returns["1Y"], snapshot.Returns["YTD"],
	)
	insight := s.insight.GenerateInsight(ctx, prompt, fallback)

	return models.NewEnvelope(models.AgentMarketData, snapshot, insight, snapshotConfidence)
}

// Snapshot builds the market snapshot from quote and history data.
func (s *Service) Snapshot(ctx context.Context, ticker common.Ticker) (*models.MarketSnapshot, error) {
	history, err := s.History(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price history for %s: %w", ticker.String(), err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("no price history available for %s", ticker.String())
	}

	last := history[len(history)-1]
	price := last.Close
	previousClose := last.Close
	if len(history) > 1 {
		previousClose = history[len(history)-2].Close
	}
	volume := last.Volume
	dayHigh := last.High
	dayLow := last.Low

	// Prefer the delayed quote when available, history covers the rest.
	if rt, qErr := s.source.GetRealTimeQuote(ctx, ticker.EODHDSymbol()); qErr == nil && rt.Close > 0 {
		price = rt.Close
		if rt.PreviousClose > 0 {
			previousClose = rt.PreviousClose
		}
		if rt.Volume > 0 {
			volume = rt.Volume
		}
		if rt.High > 0 {
			dayHigh = rt.High
		}
		if rt.Low > 0 {
			dayLow = rt.Low
		}
	}

	change := price - previousClose
	changePercent := 0.0
	if previousClose != 0 {
		changePercent = change / previousClose * 100
	}

	high, low := rangeHighLow(history)
	position := 50.0
	if high > low {
		position = (price - low) / (high - low) * 100
	}

	snapshot := &models.MarketSnapshot{
		Ticker:           ticker.String(),
		CurrentPrice:     price,
		PreviousClose:    previousClose,
		Change:           change,
		ChangePercent:    changePercent,
		DayHigh:          dayHigh,
		DayLow:           dayLow,
		Volume:           volume,
		AverageVolume:    averageVolume(history, 20),
		FiftyTwoWeekHigh: high,
		FiftyTwoWeekLow:  low,
		RangePosition:    position,
		Returns:          trailingReturns(history, price),
	}
	s.attachCompanyInfo(ctx, ticker, snapshot)
	return snapshot, nil
}

// attachCompanyInfo fills in name, currency, and valuation fields from the
// fundamentals endpoint. Best effort, the snapshot stands without them.
func (s *Service) attachCompanyInfo(ctx context.Context, ticker common.Ticker, snapshot *models.MarketSnapshot) {
	fundamentals, err := s.source.GetFundamentals(ctx, ticker.EODHDSymbol())
	if err != nil || fundamentals == nil {
		if err != nil {
			s.logger.Debug().Err(err).Str("ticker", ticker.String()).Msg("Company info unavailable")
		}
		return
	}

	if g := fundamentals.General; g != nil {
		snapshot.Name = g.Name
		snapshot.Currency = g.CurrencyCode
	}
	if h := fundamentals.Highlights; h != nil {
		snapshot.MarketCap = positive(h.MarketCapitalization)
		snapshot.PERatio = positive(h.PERatio)
	}
	if v := fundamentals.Valuation; v != nil {
		snapshot.PriceToBook = positive(v.PriceBookMRQ)
	}
}

func positive(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}

// rangeHighLow returns the highest high and lowest low across the history.
func rangeHighLow(history eodhd.EODResponse) (high, low float64) {
	for i, candle := range history {
		if i == 0 || candle.High > high {
			high = candle.High
		}
		if i == 0 || candle.Low < low {
			low = candle.Low
		}
	}
	return high, low
}

// averageVolume returns the mean volume over the last n candles.
func averageVolume(history eodhd.EODResponse, n int) float64 {
	if len(history) == 0 {
		return 0
	}
	start := len(history) - n
	if start < 0 {
		start = 0
	}
	var sum int64
	for _, candle := range history[start:] {
		sum += candle.Volume
	}
	return float64(sum) / float64(len(history)-start)
}

// trailingReturns computes percentage returns over standard windows.
// The 1Y window uses the full history, YTD measures from the first
// trading day of the current year.
func trailingReturns(history eodhd.EODResponse, price float64) map[string]float64 {
	returns := make(map[string]float64)

	windowReturn := func(bars int) (float64, bool) {
		idx := len(history) - 1 - bars
		if idx < 0 {
			return 0, false
		}
		base := history[idx].Close
		if base == 0 {
			return 0, false
		}
		return (price/base - 1) * 100, true
	}

	if r, ok := windowReturn(windowOneMonth); ok {
		returns["1M"] = r
	}
	if r, ok := windowReturn(windowThreeMonth); ok {
		returns["3M"] = r
	}
	if r, ok := windowReturn(windowSixMonth); ok {
		returns["6M"] = r
	}
	if base := history[0].Close; base != 0 {
		returns["1Y"] = (price/base - 1) * 100
	}

	year := history[len(history)-1].Date.Year()
	for _, candle := range history {
		if candle.Date.Year() == year {
			if candle.Close != 0 {
				returns["YTD"] = (price/candle.Close - 1) * 100
			}
			break
		}
	}

	return returns
}
