package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/models"
	"github.com/ternarybob/consilium/internal/services/llm"
)

func newTestService() *Service {
	return NewService(llm.NewService(nil, nil), common.GetLogger())
}

func successEnvelopes() (models.Envelope, models.Envelope, models.Envelope) {
	snapshot := &models.MarketSnapshot{Ticker: "NSE:RELIANCE", CurrentPrice: 100}

	pe := 20.0
	growth := 0.15
	fund := fundProfile("Strong", "Attractively valued", "Strong", "High Growth")
	fund.Metrics.PERatio = &pe
	fund.Metrics.RevenueGrowth = &growth

	tech := techProfile("Strong Bullish", "Bullish", []string{"RSI recovering", "Price above 200 SMA"}, nil)
	tech.Levels = models.PriceLevels{Resistance1: 110}

	return models.NewEnvelope(models.AgentMarketData, snapshot, "", 0.85),
		models.NewEnvelope(models.AgentFundamental, fund, "", 0.9),
		models.NewEnvelope(models.AgentTechnical, tech, "", 0.7)
}

func TestSynthesizeStrongBuy(t *testing.T) {
	svc := newTestService()
	ticker := common.ParseTicker("RELIANCE.NSE")

	market, fund, tech := successEnvelopes()
	env := svc.Synthesize(context.Background(), ticker, market, fund, tech)

	require.Equal(t, models.StatusSuccess, env.Status)
	assert.Equal(t, models.AgentStrategy, env.Agent)

	rec, ok := env.Data.(*models.Recommendation)
	require.True(t, ok)
	assert.Equal(t, "NSE:RELIANCE", rec.Ticker)

	// Fundamental 50+20+15+15+15 = 100, technical 50+25+15+6 = 96, overall 98.
	assert.Equal(t, 100, rec.FundamentalScore)
	assert.Equal(t, 96, rec.TechnicalScore)
	assert.Equal(t, 98, rec.OverallScore)
	assert.Equal(t, "Strong Buy", rec.Action)
	assert.Equal(t, "Excellent fundamentals and favorable technical setup", rec.ActionDescription)

	assert.Equal(t, 120.0, rec.TargetPrice.Mid)
	assert.Equal(t, 20.0, rec.TargetPrice.UpsidePercent)
	assert.Equal(t, "Low", rec.Risk.Level)
	assert.Contains(t, rec.KeyFactors.Bullish, "Strong profitability")
	assert.NotEmpty(t, env.Insight)

	// 0.2*0.85 + 0.5*0.9 + 0.3*0.7 = 0.83
	assert.Equal(t, 0.83, env.Confidence)
}

func TestSynthesizeDegradedUpstream(t *testing.T) {
	svc := newTestService()
	ticker := common.ParseTicker("TCS.NSE")

	market, _, _ := successEnvelopes()
	fundErr := models.Envelope{Agent: models.AgentFundamental, Status: models.StatusError, Error: "fundamentals unavailable"}
	techErr := models.Envelope{Agent: models.AgentTechnical, Status: models.StatusError, Error: "insufficient price history"}

	env := svc.Synthesize(context.Background(), ticker, market, fundErr, techErr)

	require.Equal(t, models.StatusSuccess, env.Status)
	rec, ok := env.Data.(*models.Recommendation)
	require.True(t, ok)

	// Both dimensions collapse to neutral 50.
	assert.Equal(t, 50, rec.FundamentalScore)
	assert.Equal(t, 50, rec.TechnicalScore)
	assert.Equal(t, 50, rec.OverallScore)
	assert.Equal(t, "Hold", rec.Action)

	// Price still known, so the target range falls back to +10%.
	assert.Equal(t, 110.0, rec.TargetPrice.Mid)
	assert.Equal(t, "Low", rec.Risk.Level)
	assert.Empty(t, rec.KeyFactors.Bullish)

	// Failed agents report zero confidence: 0.2*0.85 + 0.5*0 + 0.3*0 = 0.17
	assert.Equal(t, 0.17, env.Confidence)
}

func TestSynthesizeNoMarketPayload(t *testing.T) {
	svc := newTestService()
	ticker := common.ParseTicker("INFY.NSE")

	marketErr := models.Envelope{Agent: models.AgentMarketData, Status: models.StatusError, Error: "no data"}
	_, fund, tech := successEnvelopes()

	env := svc.Synthesize(context.Background(), ticker, marketErr, fund, tech)

	require.Equal(t, models.StatusSuccess, env.Status)
	rec, ok := env.Data.(*models.Recommendation)
	require.True(t, ok)

	// No price means no target range.
	assert.Equal(t, models.TargetPrice{}, rec.TargetPrice)
	// Scores still computed from the surviving envelopes.
	assert.Equal(t, 100, rec.FundamentalScore)
	assert.Equal(t, 96, rec.TechnicalScore)
	// Only the surviving agents contribute: 0.5*0.9 + 0.3*0.7 = 0.66
	assert.Equal(t, 0.66, env.Confidence)
}

func TestSynthesizeSellCase(t *testing.T) {
	svc := newTestService()
	ticker := common.ParseTicker("WEAK.NSE")

	snapshot := &models.MarketSnapshot{Ticker: "NSE:WEAK", CurrentPrice: 50}
	highDebt := 2.0
	fund := fundProfile("Weak", "Expensive", "Needs Attention", "Declining")
	fund.Metrics.DebtToEquity = &highDebt
	tech := techProfile("Bearish", "Bearish", nil, []string{"RSI overbought", "Price below 200 SMA"})
	tech.Volatility = "High Volatility"

	env := svc.Synthesize(context.Background(), ticker,
		models.NewEnvelope(models.AgentMarketData, snapshot, "", 0.85),
		models.NewEnvelope(models.AgentFundamental, fund, "", 0.9),
		models.NewEnvelope(models.AgentTechnical, tech, "", 0.6),
	)

	rec, ok := env.Data.(*models.Recommendation)
	require.True(t, ok)

	assert.Equal(t, 0, rec.FundamentalScore)
	// 50 - 20 - 15 - 6 = 9
	assert.Equal(t, 9, rec.TechnicalScore)
	assert.Equal(t, 3, rec.OverallScore)
	assert.Equal(t, "Sell", rec.Action)

	assert.Equal(t, "High", rec.Risk.Level)
	assert.Equal(t, 85, rec.Risk.Score)
	assert.Contains(t, rec.Risk.Factors, "High debt levels")
	assert.Contains(t, rec.KeyFactors.Bearish, "Expensive valuation")
}
