package technical

import (
	"github.com/ternarybob/consilium/internal/eodhd"
	"github.com/ternarybob/consilium/internal/models"
)

// Signal and trend labels. The strategy agent scores on these exact strings.
const (
	TrendStrongBullish = "Strong Bullish"
	TrendBullish       = "Bullish"
	TrendNeutral       = "Neutral"
	TrendBearish       = "Bearish"

	SignalBullish = "Bullish"
	SignalNeutral = "Neutral"
	SignalBearish = "Bearish"

	labelNA = "N/A"
)

// interpretRSI classifies the RSI reading.
func interpretRSI(rsi *float64) string {
	if rsi == nil {
		return labelNA
	}
	switch {
	case *rsi > 70:
		return "Overbought"
	case *rsi < 30:
		return "Oversold"
	case *rsi > 50:
		return "Bullish"
	default:
		return "Bearish"
	}
}

// interpretMACD classifies the MACD relative to its signal line.
func interpretMACD(macd, signal, hist *float64) string {
	if macd == nil || signal == nil {
		return labelNA
	}
	switch {
	case *macd > *signal && hist != nil && *hist > 0:
		return "Bullish Crossover"
	case *macd < *signal && hist != nil && *hist < 0:
		return "Bearish Crossover"
	case *macd > 0:
		return "Bullish"
	default:
		return "Bearish"
	}
}

// interpretStochastic classifies the slow %K reading.
func interpretStochastic(stochK *float64) string {
	if stochK == nil {
		return labelNA
	}
	switch {
	case *stochK > 80:
		return "Overbought"
	case *stochK < 20:
		return "Oversold"
	default:
		return "Neutral"
	}
}

// interpretATR classifies volatility as ATR percent of price.
func interpretATR(atr *float64, price float64) string {
	if atr == nil || price == 0 {
		return labelNA
	}
	atrPct := *atr / price * 100
	switch {
	case atrPct > 3:
		return "High Volatility"
	case atrPct > 1.5:
		return "Moderate Volatility"
	default:
		return "Low Volatility"
	}
}

// bbPosition locates price within the Bollinger band range.
func bbPosition(price float64, upper, lower *float64) string {
	if upper == nil || lower == nil {
		return labelNA
	}
	rangeSize := *upper - *lower
	if rangeSize == 0 {
		return labelNA
	}
	position := (price - *lower) / rangeSize
	switch {
	case position > 0.9:
		return "Near Upper Band"
	case position < 0.1:
		return "Near Lower Band"
	default:
		return "Middle"
	}
}

// analyzeTrend grades the trend per horizon and overall. The overall
// direction counts how many of the three SMAs price sits above.
func analyzeTrend(history eodhd.EODResponse, price float64, indicators models.TechnicalIndicators) (models.TrendAnalysis, int) {
	trend := models.TrendAnalysis{
		ShortTerm:  horizonTrend(history, price, 20),
		MediumTerm: horizonTrend(history, price, 50),
		LongTerm:   horizonTrend(history, price, 200),
	}

	strength := 0
	for _, sma := range []*float64{indicators.SMA20, indicators.SMA50, indicators.SMA200} {
		if sma != nil && price > *sma {
			strength++
		}
	}

	switch strength {
	case 3:
		trend.Direction = TrendStrongBullish
	case 2:
		trend.Direction = TrendBullish
	case 1:
		trend.Direction = TrendNeutral
	default:
		trend.Direction = TrendBearish
	}

	return trend, strength
}

// horizonTrend compares the latest close against the close n bars back.
func horizonTrend(history eodhd.EODResponse, price float64, bars int) string {
	idx := len(history) - bars
	if idx < 0 {
		return labelNA
	}
	if price > history[idx].Close {
		return "Bullish"
	}
	return "Bearish"
}

// generateSignals collects individual indicator signals and the overall
// call. The overall signal requires a margin of more than one between
// bullish and bearish counts.
func generateSignals(price float64, indicators models.TechnicalIndicators) (models.SignalSummary, int) {
	var bullish, bearish []string

	if indicators.RSI != nil {
		if *indicators.RSI < 30 {
			bullish = append(bullish, "RSI Oversold")
		} else if *indicators.RSI > 70 {
			bearish = append(bearish, "RSI Overbought")
		}
	}

	macdSignal := interpretMACD(indicators.MACD, indicators.MACDSignal, indicators.MACDHist)
	switch macdSignal {
	case "Bullish Crossover", "Bullish":
		bullish = append(bullish, "MACD "+macdSignal)
	case "Bearish Crossover", "Bearish":
		bearish = append(bearish, "MACD "+macdSignal)
	}

	if indicators.SMA200 != nil {
		if price > *indicators.SMA200 {
			bullish = append(bullish, "Price above 200 SMA")
		} else {
			bearish = append(bearish, "Price below 200 SMA")
		}
	}

	switch interpretStochastic(indicators.StochK) {
	case "Oversold":
		bullish = append(bullish, "Stochastic Oversold")
	case "Overbought":
		bearish = append(bearish, "Stochastic Overbought")
	}

	switch bbPosition(price, indicators.BBUpper, indicators.BBLower) {
	case "Near Lower Band":
		bullish = append(bullish, "Price near lower Bollinger Band")
	case "Near Upper Band":
		bearish = append(bearish, "Price near upper Bollinger Band")
	}

	summary := models.SignalSummary{
		Bullish: bullish,
		Bearish: bearish,
	}
	switch {
	case len(bullish) > len(bearish)+1:
		summary.Overall = SignalBullish
	case len(bearish) > len(bullish)+1:
		summary.Overall = SignalBearish
	default:
		summary.Overall = SignalNeutral
	}

	strength := len(bullish) - len(bearish)
	if strength < 0 {
		strength = -strength
	}
	return summary, strength
}

// analyzeVolume compares current volume against its 20-day average.
func analyzeVolume(history eodhd.EODResponse) models.VolumeAnalysis {
	if len(history) == 0 {
		return models.VolumeAnalysis{Ratio: 1, Signal: "Neutral"}
	}

	start := len(history) - 20
	if start < 0 {
		start = 0
	}
	var sum int64
	for _, candle := range history[start:] {
		sum += candle.Volume
	}
	avg := float64(sum) / float64(len(history)-start)

	current := float64(history[len(history)-1].Volume)
	ratio := 1.0
	if avg > 0 {
		ratio = current / avg
	}

	priceChange := 0.0
	if len(history) > 1 {
		priceChange = history[len(history)-1].Close - history[len(history)-2].Close
	}

	signal := "Neutral"
	switch {
	case priceChange > 0 && ratio > 1.2:
		signal = "Bullish (Up on high volume)"
	case priceChange < 0 && ratio > 1.2:
		signal = "Bearish (Down on high volume)"
	case priceChange > 0 && ratio < 0.8:
		signal = "Weak bullish (Up on low volume)"
	case priceChange < 0 && ratio < 0.8:
		signal = "Potential reversal (Down on low volume)"
	}

	return models.VolumeAnalysis{Ratio: ratio, Signal: signal}
}

// confidence scales with signal agreement: 0.5 base plus 0.1 per point
// of net signal strength, capped at 0.9.
func confidence(signalStrength int) float64 {
	boost := float64(signalStrength) * 0.1
	if boost > 0.4 {
		boost = 0.4
	}
	return 0.5 + boost
}
