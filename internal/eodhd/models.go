package eodhd

import (
	"strconv"
	"time"
)

// EODData represents a single day's end-of-day price data.
type EODData struct {
	Date          time.Time `json:"-"`
	DateStr       string    `json:"date"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`
	AdjustedClose float64   `json:"adjusted_close"`
	Volume        int64     `json:"volume"`
}

// EODResponse is a slice of EODData.
type EODResponse []EODData

// RealTimeQuote represents a delayed real-time quote from /real-time/{symbol}.
type RealTimeQuote struct {
	Code          string  `json:"code"`
	Timestamp     int64   `json:"timestamp"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	PreviousClose float64 `json:"previousClose"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_p"`
	Volume        int64   `json:"volume"`
}

// FundamentalsResponse represents the fundamentals data for a symbol.
type FundamentalsResponse struct {
	General    *GeneralInfo `json:"General"`
	Highlights *Highlights  `json:"Highlights"`
	Valuation  *Valuation   `json:"Valuation"`
	Technicals *Technicals  `json:"Technicals"`
	Financials *Financials  `json:"Financials"`
}

// GeneralInfo contains general company information.
type GeneralInfo struct {
	Code         string `json:"Code"`
	Type         string `json:"Type"`
	Name         string `json:"Name"`
	Exchange     string `json:"Exchange"`
	CurrencyCode string `json:"CurrencyCode"`
	CountryName  string `json:"CountryName"`
	Sector       string `json:"Sector"`
	Industry     string `json:"Industry"`
	Description  string `json:"Description"`
	WebURL       string `json:"WebURL"`
	IsDelisted   bool   `json:"IsDelisted"`
}

// Highlights contains key financial highlights.
type Highlights struct {
	MarketCapitalization       float64 `json:"MarketCapitalization"`
	EBITDA                     float64 `json:"EBITDA"`
	PERatio                    float64 `json:"PERatio"`
	PEGRatio                   float64 `json:"PEGRatio"`
	WallStreetTargetPrice      float64 `json:"WallStreetTargetPrice"`
	BookValue                  float64 `json:"BookValue"`
	DividendShare              float64 `json:"DividendShare"`
	DividendYield              float64 `json:"DividendYield"`
	EarningsShare              float64 `json:"EarningsShare"`
	ProfitMargin               float64 `json:"ProfitMargin"`
	OperatingMarginTTM         float64 `json:"OperatingMarginTTM"`
	ReturnOnAssetsTTM          float64 `json:"ReturnOnAssetsTTM"`
	ReturnOnEquityTTM          float64 `json:"ReturnOnEquityTTM"`
	RevenueTTM                 float64 `json:"RevenueTTM"`
	QuarterlyRevenueGrowthYOY  float64 `json:"QuarterlyRevenueGrowthYOY"`
	QuarterlyEarningsGrowthYOY float64 `json:"QuarterlyEarningsGrowthYOY"`
}

// Valuation contains valuation metrics.
type Valuation struct {
	TrailingPE             float64 `json:"TrailingPE"`
	ForwardPE              float64 `json:"ForwardPE"`
	PriceSalesTTM          float64 `json:"PriceSalesTTM"`
	PriceBookMRQ           float64 `json:"PriceBookMRQ"`
	EnterpriseValue        float64 `json:"EnterpriseValue"`
	EnterpriseValueRevenue float64 `json:"EnterpriseValueRevenue"`
	EnterpriseValueEbitda  float64 `json:"EnterpriseValueEbitda"`
}

// Technicals contains technical reference data.
type Technicals struct {
	Beta             float64 `json:"Beta"`
	FiftyTwoWeekHigh float64 `json:"52WeekHigh"`
	FiftyTwoWeekLow  float64 `json:"52WeekLow"`
	FiftyDayMA       float64 `json:"50DayMA"`
	TwoHundredDayMA  float64 `json:"200DayMA"`
}

// Financials contains financial statements.
type Financials struct {
	BalanceSheet    *FinancialStatement `json:"Balance_Sheet"`
	CashFlow        *FinancialStatement `json:"Cash_Flow"`
	IncomeStatement *FinancialStatement `json:"Income_Statement"`
}

// FinancialStatement represents a financial statement with quarterly and yearly data.
// Line item values arrive as strings or nulls, use ParseNumeric to extract them.
type FinancialStatement struct {
	Currency  string                            `json:"currency"`
	Quarterly map[string]map[string]interface{} `json:"quarterly"`
	Yearly    map[string]map[string]interface{} `json:"yearly"`
}

// LatestQuarter returns the most recent quarterly entry, or nil when none exist.
func (s *FinancialStatement) LatestQuarter() map[string]interface{} {
	if s == nil || len(s.Quarterly) == 0 {
		return nil
	}
	var latest string
	for date := range s.Quarterly {
		if date > latest {
			latest = date
		}
	}
	return s.Quarterly[latest]
}

// ParseNumeric extracts a float from an EODHD statement line item, which may be
// a JSON number, a numeric string, or null. Returns nil when no value exists.
func ParseNumeric(v interface{}) *float64 {
	switch val := v.(type) {
	case float64:
		return &val
	case string:
		if val == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return &f
		}
	}
	return nil
}

// CurrentRatio derives total current assets over total current liabilities
// from the latest quarterly balance sheet. Returns nil when either side is
// missing or liabilities are zero.
func (f *Financials) CurrentRatio() *float64 {
	if f == nil {
		return nil
	}
	quarter := f.BalanceSheet.LatestQuarter()
	if quarter == nil {
		return nil
	}
	assets := ParseNumeric(quarter["totalCurrentAssets"])
	liabilities := ParseNumeric(quarter["totalCurrentLiabilities"])
	if assets == nil || liabilities == nil || *liabilities == 0 {
		return nil
	}
	ratio := *assets / *liabilities
	return &ratio
}

// FreeCashFlow returns the latest quarterly free cash flow, or nil when the
// cash flow statement is missing or the line item is absent.
func (f *Financials) FreeCashFlow() *float64 {
	if f == nil {
		return nil
	}
	quarter := f.CashFlow.LatestQuarter()
	if quarter == nil {
		return nil
	}
	return ParseNumeric(quarter["freeCashFlow"])
}

// DebtToEquity derives total debt over shareholder equity from the latest
// quarterly balance sheet. Returns nil when either side is missing or equity
// is zero.
func (f *Financials) DebtToEquity() *float64 {
	if f == nil {
		return nil
	}
	quarter := f.BalanceSheet.LatestQuarter()
	if quarter == nil {
		return nil
	}
	debt := ParseNumeric(quarter["totalDebt"])
	if debt == nil {
		debt = ParseNumeric(quarter["shortLongTermDebtTotal"])
	}
	equity := ParseNumeric(quarter["totalStockholderEquity"])
	if debt == nil || equity == nil || *equity == 0 {
		return nil
	}
	ratio := *debt / *equity
	return &ratio
}
