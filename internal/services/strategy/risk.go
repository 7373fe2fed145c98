package strategy

import (
	"github.com/ternarybob/consilium/internal/models"
)

// assessRisk accumulates a risk score from fundamental and technical red
// flags. Higher is worse.
func assessRisk(f *models.FundamentalProfile, t *models.TechnicalProfile) models.RiskAssessment {
	factors := []string{}
	score := 0

	if f != nil {
		if f.Metrics.DebtToEquity != nil && *f.Metrics.DebtToEquity > 1 {
			factors = append(factors, "High debt levels")
			score += 20
		}
		switch f.Assessments.Profitability {
		case "Weak", "Moderate":
			factors = append(factors, "Weak profitability")
			score += 15
		}
		if f.Assessments.Growth == "Declining" {
			factors = append(factors, "Declining growth")
			score += 15
		}
	}

	if t != nil {
		if t.Volatility == "High Volatility" {
			factors = append(factors, "High price volatility")
			score += 15
		}
		if t.Trend.Direction == "Bearish" {
			factors = append(factors, "Bearish price trend")
			score += 20
		}
	}

	level := "Low"
	switch {
	case score >= 50:
		level = "High"
	case score >= 30:
		level = "Moderate"
	}

	return models.RiskAssessment{
		Level:   level,
		Score:   score,
		Factors: factors,
	}
}
