package fundamental

import "github.com/ternarybob/consilium/internal/models"

// Assessment labels. The strategy agent scores on these exact strings.
const (
	ProfitabilityStrong   = "Strong"
	ProfitabilityGood     = "Good"
	ProfitabilityModerate = "Moderate"
	ProfitabilityWeak     = "Weak"

	ValuationUnknown     = "Unable to assess"
	ValuationNegative    = "Negative earnings"
	ValuationUndervalued = "Undervalued (PEG < 1)"
	ValuationAttractive  = "Attractively valued"
	ValuationFair        = "Fairly valued"
	ValuationPremium     = "Premium valuation"
	ValuationExpensive   = "Expensive"

	HealthStrong    = "Strong"
	HealthHealthy   = "Healthy"
	HealthModerate  = "Moderate"
	HealthAttention = "Needs Attention"

	GrowthHigh      = "High Growth"
	GrowthModerate  = "Moderate Growth"
	GrowthLow       = "Low Growth"
	GrowthDeclining = "Declining"
	GrowthUnknown   = "Unable to assess"

	CashFlowPositive  = "Positive"
	CashFlowAttention = "Needs Attention"
)

func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// assessProfitability grades return on equity against profit margin.
func assessProfitability(m models.FundamentalMetrics) string {
	roe := value(m.ReturnOnEquity)
	margin := value(m.ProfitMargin)

	switch {
	case roe > 0.15 && margin > 0.10:
		return ProfitabilityStrong
	case roe > 0.10 && margin > 0.05:
		return ProfitabilityGood
	case roe > 0:
		return ProfitabilityModerate
	default:
		return ProfitabilityWeak
	}
}

// assessValuation grades the P/E ratio, preferring PEG when it signals
// an undervalued growth stock.
func assessValuation(m models.FundamentalMetrics) string {
	if m.PERatio == nil {
		return ValuationUnknown
	}
	pe := *m.PERatio

	switch {
	case pe < 0:
		return ValuationNegative
	case m.PEGRatio != nil && *m.PEGRatio > 0 && *m.PEGRatio < 1:
		return ValuationUndervalued
	case pe < 15:
		return ValuationAttractive
	case pe < 25:
		return ValuationFair
	case pe < 40:
		return ValuationPremium
	default:
		return ValuationExpensive
	}
}

// assessFinancialHealth grades liquidity against leverage. DebtToEquity
// is a ratio here (total debt over equity), not a percentage.
func assessFinancialHealth(m models.FundamentalMetrics) string {
	current := value(m.CurrentRatio)

	// Unknown leverage never grades better than Moderate, liquidity alone
	// does not make a balance sheet Strong.
	switch {
	case m.DebtToEquity != nil && current > 1.5 && *m.DebtToEquity < 0.5:
		return HealthStrong
	case m.DebtToEquity != nil && current > 1.0 && *m.DebtToEquity < 1.0:
		return HealthHealthy
	case current > 0.8:
		return HealthModerate
	default:
		return HealthAttention
	}
}

// assessGrowth grades year-over-year revenue growth.
func assessGrowth(m models.FundamentalMetrics) string {
	if m.RevenueGrowth == nil {
		return GrowthUnknown
	}
	growth := *m.RevenueGrowth

	switch {
	case growth > 0.20:
		return GrowthHigh
	case growth > 0.10:
		return GrowthModerate
	case growth > 0:
		return GrowthLow
	case growth < 0:
		return GrowthDeclining
	default:
		return GrowthUnknown
	}
}

// assessCashFlow grades free cash flow generation. Informational only,
// the strategy agent does not score on it.
func assessCashFlow(m models.FundamentalMetrics) string {
	if m.FreeCashFlow != nil && *m.FreeCashFlow > 0 {
		return CashFlowPositive
	}
	return CashFlowAttention
}

// Assess derives all qualitative labels from the metrics.
func Assess(m models.FundamentalMetrics) models.FundamentalAssessments {
	return models.FundamentalAssessments{
		Profitability:   assessProfitability(m),
		Valuation:       assessValuation(m),
		FinancialHealth: assessFinancialHealth(m),
		Growth:          assessGrowth(m),
		CashFlow:        assessCashFlow(m),
	}
}

// Confidence scales with how many of the key metrics were available:
// 0.5 base plus up to 0.4 when P/E, ROE, profit margin, and revenue
// growth are all present.
func Confidence(m models.FundamentalMetrics) float64 {
	available := 0
	for _, p := range []*float64{m.PERatio, m.ReturnOnEquity, m.ProfitMargin, m.RevenueGrowth} {
		if p != nil {
			available++
		}
	}
	return 0.5 + float64(available)/4.0*0.4
}
