package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/models"
)

// scoreByTicker returns per-ticker strategy envelopes so ranking order
// can be asserted.
type scoreByTicker struct {
	scores map[string]int
}

func (f *scoreByTicker) Synthesize(_ context.Context, ticker common.Ticker, _, _, _ models.Envelope) models.Envelope {
	rec := &models.Recommendation{
		Ticker:       ticker.String(),
		Action:       "Hold",
		OverallScore: f.scores[ticker.String()],
	}
	return models.NewEnvelope(models.AgentStrategy, rec, "", 0.8)
}

// failFor errors the market agent for selected tickers.
type failFor struct {
	fail map[string]bool
}

func (f *failFor) Analyze(_ context.Context, ticker common.Ticker) models.Envelope {
	if f.fail[ticker.String()] {
		return models.NewErrorEnvelope(models.AgentMarketData, errors.New("no price data"))
	}
	return models.NewEnvelope(models.AgentMarketData, &models.MarketSnapshot{CurrentPrice: 100}, "", 0.85)
}

func compareTickers(t *testing.T, raws ...string) []common.Ticker {
	t.Helper()
	tickers := make([]common.Ticker, 0, len(raws))
	for _, raw := range raws {
		tickers = append(tickers, mustTicker(t, raw))
	}
	return tickers
}

func TestCompareRankings(t *testing.T) {
	_, fundamental, technical, _ := successAgents(0)
	strategy := &scoreByTicker{scores: map[string]int{
		"NSE:RELIANCE": 82,
		"NSE:TCS":      64,
		"NSE:INFY":     71,
	}}
	p := NewPipeline(&failFor{}, fundamental, technical, strategy, nil, common.GetLogger())

	result, err := p.Compare(context.Background(), compareTickers(t, "RELIANCE.NSE", "TCS.NSE", "INFY.NSE"))
	require.NoError(t, err)

	assert.Len(t, result.Results, 3)
	assert.Empty(t, result.Failed)
	require.Len(t, result.Rankings, 3)
	assert.Equal(t, "NSE:RELIANCE", result.Rankings[0].Ticker)
	assert.Equal(t, 82, result.Rankings[0].OverallScore)
	assert.Equal(t, "NSE:INFY", result.Rankings[1].Ticker)
	assert.Equal(t, "NSE:TCS", result.Rankings[2].Ticker)
}

func TestComparePartialFailure(t *testing.T) {
	_, fundamental, technical, _ := successAgents(0)
	strategy := &scoreByTicker{scores: map[string]int{"NSE:TCS": 60}}
	market := &failFor{fail: map[string]bool{"NSE:RELIANCE": true}}
	p := NewPipeline(market, fundamental, technical, strategy, nil, common.GetLogger())

	result, err := p.Compare(context.Background(), compareTickers(t, "RELIANCE.NSE", "TCS.NSE"))
	require.NoError(t, err)

	assert.Len(t, result.Results, 1)
	assert.Equal(t, "no price data", result.Failed["NSE:RELIANCE"])
	require.Len(t, result.Rankings, 1)
	assert.Equal(t, "NSE:TCS", result.Rankings[0].Ticker)
}

func TestCompareAllFailed(t *testing.T) {
	_, fundamental, technical, strategy := successAgents(0)
	market := &failFor{fail: map[string]bool{"NSE:RELIANCE": true, "NSE:TCS": true}}
	p := NewPipeline(market, fundamental, technical, strategy, nil, common.GetLogger())

	_, err := p.Compare(context.Background(), compareTickers(t, "RELIANCE.NSE", "TCS.NSE"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed for all")
}

func TestCompareTickerCountBounds(t *testing.T) {
	_, fundamental, technical, strategy := successAgents(0)
	p := NewPipeline(&failFor{}, fundamental, technical, strategy, nil, common.GetLogger())

	_, err := p.Compare(context.Background(), compareTickers(t, "RELIANCE.NSE"))
	require.Error(t, err)

	_, err = p.Compare(context.Background(), compareTickers(t,
		"A.NSE", "B.NSE", "C.NSE", "D.NSE", "E.NSE", "F.NSE"))
	require.Error(t, err)
}
