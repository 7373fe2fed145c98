package strategy

import (
	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/models"
)

// Dimension weights for the overall score.
const (
	fundamentalWeight = 0.6
	technicalWeight   = 0.4
)

// Per-signal score adjustment.
const signalPoints = 3

var profitabilityPoints = map[string]int{
	"Strong":   20,
	"Good":     15,
	"Moderate": 5,
	"Weak":     -10,
}

var valuationPoints = map[string]int{
	"Undervalued (PEG < 1)": 20,
	"Attractively valued":   15,
	"Fairly valued":         5,
	"Premium valuation":     -5,
	"Expensive":             -15,
}

var healthPoints = map[string]int{
	"Strong":          15,
	"Healthy":         10,
	"Moderate":        0,
	"Needs Attention": -15,
}

var growthPoints = map[string]int{
	"High Growth":     15,
	"Moderate Growth": 10,
	"Low Growth":      0,
	"Declining":       -15,
}

var trendPoints = map[string]int{
	"Strong Bullish": 25,
	"Bullish":        15,
	"Neutral":        0,
	"Bearish":        -20,
}

var overallSignalPoints = map[string]int{
	"Bullish": 15,
	"Neutral": 0,
	"Bearish": -15,
}

// fundamentalScore starts at a neutral 50 and adjusts for each
// assessment label. Unknown labels contribute nothing, so a missing
// fundamental profile scores exactly 50.
func fundamentalScore(f *models.FundamentalProfile) int {
	score := 50
	if f != nil {
		score += profitabilityPoints[f.Assessments.Profitability]
		score += valuationPoints[f.Assessments.Valuation]
		score += healthPoints[f.Assessments.FinancialHealth]
		score += growthPoints[f.Assessments.Growth]
	}
	return common.ClampInt(score, 0, 100)
}

// technicalScore starts at a neutral 50, adjusts for trend direction and
// the overall signal, then adds or subtracts per individual signal.
func technicalScore(t *models.TechnicalProfile) int {
	score := 50
	if t != nil {
		score += trendPoints[t.Trend.Direction]
		score += overallSignalPoints[t.Signals.Overall]
		score += len(t.Signals.Bullish) * signalPoints
		score -= len(t.Signals.Bearish) * signalPoints
	}
	return common.ClampInt(score, 0, 100)
}

// overallScore is the weighted blend of both dimensions, truncated to int.
func overallScore(fundScore, techScore int) int {
	return int(float64(fundScore)*fundamentalWeight + float64(techScore)*technicalWeight)
}

// recommendAction maps the overall score onto an action with its
// standard description.
func recommendAction(overall int) (action, description string) {
	switch {
	case overall >= 75:
		return "Strong Buy", "Excellent fundamentals and favorable technical setup"
	case overall >= 60:
		return "Buy", "Good investment opportunity with positive outlook"
	case overall >= 45:
		return "Hold", "Maintain existing positions, wait for better entry"
	case overall >= 30:
		return "Reduce", "Consider reducing exposure, elevated risks"
	default:
		return "Sell", "Unfavorable outlook, consider exiting position"
	}
}
