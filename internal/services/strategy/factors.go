package strategy

import (
	"github.com/ternarybob/consilium/internal/models"
)

const (
	maxTechnicalFactors = 3
	maxFactors          = 5
)

// collectKeyFactors gathers the strongest arguments on each side:
// fundamental labels first, then up to three technical signals, capped at
// five per side.
func collectKeyFactors(f *models.FundamentalProfile, t *models.TechnicalProfile) models.KeyFactors {
	return models.KeyFactors{
		Bullish: collectBullish(f, t),
		Bearish: collectBearish(f, t),
	}
}

func collectBullish(f *models.FundamentalProfile, t *models.TechnicalProfile) []string {
	factors := []string{}

	if f != nil {
		a := f.Assessments
		switch a.Profitability {
		case "Strong", "Good":
			factors = append(factors, "Strong profitability")
		}
		switch a.Valuation {
		case "Undervalued (PEG < 1)", "Attractively valued":
			factors = append(factors, "Attractive valuation")
		}
		switch a.Growth {
		case "High Growth", "Moderate Growth":
			factors = append(factors, "Growing revenue")
		}
		switch a.FinancialHealth {
		case "Strong", "Healthy":
			factors = append(factors, "Healthy balance sheet")
		}
	}

	if t != nil {
		factors = append(factors, capSignals(t.Signals.Bullish)...)
	}
	return capFactors(factors)
}

func collectBearish(f *models.FundamentalProfile, t *models.TechnicalProfile) []string {
	factors := []string{}

	if f != nil {
		a := f.Assessments
		if a.Profitability == "Weak" {
			factors = append(factors, "Weak profitability")
		}
		if a.Valuation == "Expensive" {
			factors = append(factors, "Expensive valuation")
		}
		if a.Growth == "Declining" {
			factors = append(factors, "Revenue decline")
		}
		if a.FinancialHealth == "Needs Attention" {
			factors = append(factors, "Balance sheet concerns")
		}
	}

	if t != nil {
		factors = append(factors, capSignals(t.Signals.Bearish)...)
	}
	return capFactors(factors)
}

func capSignals(signals []string) []string {
	if len(signals) > maxTechnicalFactors {
		return signals[:maxTechnicalFactors]
	}
	return signals
}

func capFactors(factors []string) []string {
	if len(factors) > maxFactors {
		return factors[:maxFactors]
	}
	return factors
}
