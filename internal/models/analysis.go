package models

// Agent names used in envelopes and result maps.
const (
	AgentMarketData  = "market_data"
	AgentFundamental = "fundamental"
	AgentTechnical   = "technical"
	AgentStrategy    = "strategy"
)

// MarketSnapshot is the market data agent's payload: current pricing and
// trailing return windows for a ticker.
type MarketSnapshot struct {
	Ticker          string             `json:"ticker"`
	Name            string             `json:"name,omitempty"`
	Currency        string             `json:"currency,omitempty"`
	CurrentPrice    float64            `json:"current_price"`
	PreviousClose   float64            `json:"previous_close"`
	Change          float64            `json:"change"`
	ChangePercent   float64            `json:"change_percent"`
	DayHigh         float64            `json:"day_high,omitempty"`
	DayLow          float64            `json:"day_low,omitempty"`
	Volume          int64              `json:"volume"`
	AverageVolume   float64            `json:"average_volume"`
	MarketCap       *float64           `json:"market_cap,omitempty"`
	PERatio         *float64           `json:"pe_ratio,omitempty"`
	PriceToBook     *float64           `json:"price_to_book,omitempty"`
	FiftyTwoWeekHigh float64           `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  float64           `json:"fifty_two_week_low"`
	RangePosition   float64            `json:"range_position"` // 0-100, position within 52-week range
	Returns         map[string]float64 `json:"returns"`        // window -> percent return (1M, 3M, 6M, 1Y, YTD)
}

// FundamentalMetrics holds the raw financial ratios used for assessment.
// Pointer fields distinguish "unavailable" from a genuine zero.
type FundamentalMetrics struct {
	MarketCap       *float64 `json:"market_cap,omitempty"`
	PERatio         *float64 `json:"pe_ratio,omitempty"`
	PEGRatio        *float64 `json:"peg_ratio,omitempty"`
	PriceToBook     *float64 `json:"price_to_book,omitempty"`
	ReturnOnEquity  *float64 `json:"return_on_equity,omitempty"`
	ProfitMargin    *float64 `json:"profit_margin,omitempty"`
	OperatingMargin *float64 `json:"operating_margin,omitempty"`
	RevenueGrowth   *float64 `json:"revenue_growth,omitempty"`
	EarningsGrowth  *float64 `json:"earnings_growth,omitempty"`
	DebtToEquity    *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio    *float64 `json:"current_ratio,omitempty"`
	FreeCashFlow    *float64 `json:"free_cash_flow,omitempty"`
	DividendYield   *float64 `json:"dividend_yield,omitempty"`
	DividendShare   *float64 `json:"dividend_share,omitempty"`
	EPS             *float64 `json:"eps,omitempty"`
	BookValue       *float64 `json:"book_value,omitempty"`
}

// FundamentalAssessments holds the qualitative labels derived from metrics.
type FundamentalAssessments struct {
	Profitability   string `json:"profitability"`
	Valuation       string `json:"valuation"`
	FinancialHealth string `json:"financial_health"`
	Growth          string `json:"growth"`
	CashFlow        string `json:"cash_flow"`
}

// DividendProfile summarizes a company's dividend posture. Informational
// only, it does not feed scoring.
type DividendProfile struct {
	Yield    *float64 `json:"yield,omitempty"`
	PerShare *float64 `json:"per_share,omitempty"`
	IsPayer  bool     `json:"is_payer"`
}

// FundamentalProfile is the fundamental agent's payload.
type FundamentalProfile struct {
	Ticker      string                 `json:"ticker"`
	Sector      string                 `json:"sector,omitempty"`
	Industry    string                 `json:"industry,omitempty"`
	Metrics     FundamentalMetrics     `json:"metrics"`
	Assessments FundamentalAssessments `json:"assessments"`
	Dividends   DividendProfile        `json:"dividends"`
}

// TechnicalIndicators holds the computed indicator values. Pointer fields are
// nil when there is not enough price history to compute them.
type TechnicalIndicators struct {
	SMA20      *float64 `json:"sma_20,omitempty"`
	SMA50      *float64 `json:"sma_50,omitempty"`
	SMA200     *float64 `json:"sma_200,omitempty"`
	EMA12      *float64 `json:"ema_12,omitempty"`
	EMA26      *float64 `json:"ema_26,omitempty"`
	RSI        *float64 `json:"rsi,omitempty"`
	MACD       *float64 `json:"macd,omitempty"`
	MACDSignal *float64 `json:"macd_signal,omitempty"`
	MACDHist   *float64 `json:"macd_hist,omitempty"`
	BBUpper    *float64 `json:"bb_upper,omitempty"`
	BBMiddle   *float64 `json:"bb_middle,omitempty"`
	BBLower    *float64 `json:"bb_lower,omitempty"`
	StochK     *float64 `json:"stoch_k,omitempty"`
	StochD     *float64 `json:"stoch_d,omitempty"`
	ATR        *float64 `json:"atr,omitempty"`
}

// TrendAnalysis describes price direction over several horizons.
type TrendAnalysis struct {
	Direction  string `json:"direction"` // Strong Bullish, Bullish, Neutral, Bearish
	ShortTerm  string `json:"short_term"`
	MediumTerm string `json:"medium_term"`
	LongTerm   string `json:"long_term"`
}

// SignalSummary collects the individual indicator signals.
type SignalSummary struct {
	Bullish []string `json:"bullish"`
	Bearish []string `json:"bearish"`
	Overall string   `json:"overall"` // Bullish, Neutral, Bearish
}

// PriceLevels holds pivot-derived support and resistance levels.
type PriceLevels struct {
	Pivot       float64 `json:"pivot"`
	Resistance1 float64 `json:"resistance_1"`
	Resistance2 float64 `json:"resistance_2"`
	Support1    float64 `json:"support_1"`
	Support2    float64 `json:"support_2"`
}

// VolumeAnalysis compares current volume against its recent average.
type VolumeAnalysis struct {
	Ratio  float64 `json:"ratio"` // current volume / 20-day average
	Signal string  `json:"signal"`
}

// TechnicalProfile is the technical agent's payload.
type TechnicalProfile struct {
	Ticker     string              `json:"ticker"`
	Price      float64             `json:"price"`
	Indicators TechnicalIndicators `json:"indicators"`
	Trend      TrendAnalysis       `json:"trend"`
	Signals    SignalSummary       `json:"signals"`
	Levels     PriceLevels         `json:"levels"`
	Volume     VolumeAnalysis      `json:"volume"`
	Volatility string              `json:"volatility"` // High, Moderate, Low Volatility
}

// TargetPrice is the projected price range from the strategy agent.
type TargetPrice struct {
	Low           float64 `json:"low"`
	Mid           float64 `json:"mid"`
	High          float64 `json:"high"`
	UpsidePercent float64 `json:"upside_percent"`
}

// RiskAssessment grades downside exposure.
type RiskAssessment struct {
	Level   string   `json:"level"` // High, Moderate, Low
	Score   int      `json:"score"`
	Factors []string `json:"factors"`
}

// KeyFactors lists the strongest arguments on each side, capped at five
// per side.
type KeyFactors struct {
	Bullish []string `json:"bullish"`
	Bearish []string `json:"bearish"`
}

// Recommendation is the strategy agent's payload: the final synthesized
// call for a ticker.
type Recommendation struct {
	Ticker            string         `json:"ticker"`
	Action            string         `json:"action"` // Strong Buy, Buy, Hold, Reduce, Sell
	ActionDescription string         `json:"action_description"`
	OverallScore      int            `json:"overall_score"`
	FundamentalScore  int            `json:"fundamental_score"`
	TechnicalScore    int            `json:"technical_score"`
	TargetPrice       TargetPrice    `json:"target_price"`
	Risk              RiskAssessment `json:"risk"`
	KeyFactors        KeyFactors     `json:"key_factors"`
}

// Quote is the lightweight response for the quote endpoint.
type Quote struct {
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name,omitempty"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
	Timestamp     int64   `json:"timestamp"`
}
