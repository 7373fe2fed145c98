package fundamental

import (
	"testing"

	"github.com/ternarybob/consilium/internal/models"
)

func ptr(v float64) *float64 { return &v }

func TestAssessProfitability(t *testing.T) {
	tests := []struct {
		name   string
		roe    *float64
		margin *float64
		want   string
	}{
		{"strong", ptr(0.20), ptr(0.15), ProfitabilityStrong},
		{"good", ptr(0.12), ptr(0.08), ProfitabilityGood},
		{"moderate", ptr(0.05), ptr(0.02), ProfitabilityModerate},
		{"weak negative roe", ptr(-0.05), ptr(0.02), ProfitabilityWeak},
		{"missing metrics", nil, nil, ProfitabilityWeak},
		{"strong roe thin margin", ptr(0.20), ptr(0.06), ProfitabilityGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := models.FundamentalMetrics{ReturnOnEquity: tt.roe, ProfitMargin: tt.margin}
			if got := assessProfitability(m); got != tt.want {
				t.Errorf("assessProfitability() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssessValuation(t *testing.T) {
	tests := []struct {
		name string
		pe   *float64
		peg  *float64
		want string
	}{
		{"no pe", nil, nil, ValuationUnknown},
		{"negative earnings", ptr(-5), nil, ValuationNegative},
		{"undervalued by peg", ptr(30), ptr(0.8), ValuationUndervalued},
		{"attractive", ptr(12), nil, ValuationAttractive},
		{"fair", ptr(20), ptr(1.5), ValuationFair},
		{"premium", ptr(35), nil, ValuationPremium},
		{"expensive", ptr(55), nil, ValuationExpensive},
		{"peg boundary not undervalued", ptr(20), ptr(1.0), ValuationFair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := models.FundamentalMetrics{PERatio: tt.pe, PEGRatio: tt.peg}
			if got := assessValuation(m); got != tt.want {
				t.Errorf("assessValuation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssessFinancialHealth(t *testing.T) {
	tests := []struct {
		name    string
		current *float64
		de      *float64
		want    string
	}{
		{"strong", ptr(2.0), ptr(0.3), HealthStrong},
		{"healthy", ptr(1.2), ptr(0.8), HealthHealthy},
		{"moderate", ptr(0.9), ptr(2.0), HealthModerate},
		{"needs attention", ptr(0.5), ptr(3.0), HealthAttention},
		{"missing metrics", nil, nil, HealthAttention},
		{"liquid but leveraged", ptr(2.0), ptr(1.5), HealthModerate},
		{"liquid with unknown leverage", ptr(2.0), nil, HealthModerate},
		{"thin liquidity unknown leverage", ptr(1.1), nil, HealthModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := models.FundamentalMetrics{CurrentRatio: tt.current, DebtToEquity: tt.de}
			if got := assessFinancialHealth(m); got != tt.want {
				t.Errorf("assessFinancialHealth() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssessGrowth(t *testing.T) {
	tests := []struct {
		name   string
		growth *float64
		want   string
	}{
		{"high", ptr(0.30), GrowthHigh},
		{"moderate", ptr(0.15), GrowthModerate},
		{"low", ptr(0.05), GrowthLow},
		{"flat is unassessable", ptr(0.0), GrowthUnknown},
		{"missing is unassessable", nil, GrowthUnknown},
		{"declining", ptr(-0.10), GrowthDeclining},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := models.FundamentalMetrics{RevenueGrowth: tt.growth}
			if got := assessGrowth(m); got != tt.want {
				t.Errorf("assessGrowth() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssessCashFlow(t *testing.T) {
	tests := []struct {
		name string
		m    models.FundamentalMetrics
		want string
	}{
		{"positive free cash flow", models.FundamentalMetrics{FreeCashFlow: ptr(350)}, CashFlowPositive},
		{"negative free cash flow", models.FundamentalMetrics{FreeCashFlow: ptr(-50)}, CashFlowAttention},
		{"zero free cash flow", models.FundamentalMetrics{FreeCashFlow: ptr(0)}, CashFlowAttention},
		{"missing", models.FundamentalMetrics{}, CashFlowAttention},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := assessCashFlow(tt.m); got != tt.want {
				t.Errorf("assessCashFlow() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name string
		m    models.FundamentalMetrics
		want float64
	}{
		{"nothing available", models.FundamentalMetrics{}, 0.5},
		{"two available", models.FundamentalMetrics{PERatio: ptr(20), ReturnOnEquity: ptr(0.1)}, 0.7},
		{
			"all available",
			models.FundamentalMetrics{
				PERatio:        ptr(20),
				ReturnOnEquity: ptr(0.1),
				ProfitMargin:   ptr(0.1),
				RevenueGrowth:  ptr(0.1),
			},
			0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confidence(tt.m); got != tt.want {
				t.Errorf("Confidence() = %v, want %v", got, tt.want)
			}
		})
	}
}
