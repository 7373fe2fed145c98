package technical

import (
	"github.com/markcheno/go-talib"
	"github.com/ternarybob/consilium/internal/eodhd"
	"github.com/ternarybob/consilium/internal/models"
)

// Indicator periods.
const (
	rsiPeriod    = 14
	atrPeriod    = 14
	stochPeriod  = 14
	bbandsPeriod = 20
	macdFast     = 12
	macdSlow     = 26
	macdSignal   = 9
)

// series splits candles into the price arrays talib consumes.
func series(history eodhd.EODResponse) (high, low, close []float64, volume []int64) {
	high = make([]float64, len(history))
	low = make([]float64, len(history))
	close = make([]float64, len(history))
	volume = make([]int64, len(history))
	for i, candle := range history {
		high[i] = candle.High
		low[i] = candle.Low
		close[i] = candle.Close
		volume[i] = candle.Volume
	}
	return high, low, close, volume
}

// lastValid returns the final value of an indicator series, or nil when the
// series is empty or the value was never computed (talib pads with zero).
func lastValid(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	v := values[len(values)-1]
	return &v
}

// computeIndicators runs each indicator that the price history can support.
// Shorter histories simply leave the longer-period fields nil.
func computeIndicators(history eodhd.EODResponse) models.TechnicalIndicators {
	var indicators models.TechnicalIndicators
	high, low, close, _ := series(history)
	n := len(close)

	if n >= 20 {
		indicators.SMA20 = lastValid(talib.Sma(close, 20))
	}
	if n >= 50 {
		indicators.SMA50 = lastValid(talib.Sma(close, 50))
	}
	if n >= 200 {
		indicators.SMA200 = lastValid(talib.Sma(close, 200))
	}
	if n >= macdFast {
		indicators.EMA12 = lastValid(talib.Ema(close, macdFast))
	}
	if n >= macdSlow {
		indicators.EMA26 = lastValid(talib.Ema(close, macdSlow))
	}
	if n > rsiPeriod {
		indicators.RSI = lastValid(talib.Rsi(close, rsiPeriod))
	}
	if n >= macdSlow+macdSignal {
		macd, signal, hist := talib.Macd(close, macdFast, macdSlow, macdSignal)
		indicators.MACD = lastValid(macd)
		indicators.MACDSignal = lastValid(signal)
		indicators.MACDHist = lastValid(hist)
	}
	if n >= bbandsPeriod {
		upper, middle, lower := talib.BBands(close, bbandsPeriod, 2.0, 2.0, talib.SMA)
		indicators.BBUpper = lastValid(upper)
		indicators.BBMiddle = lastValid(middle)
		indicators.BBLower = lastValid(lower)
	}
	if n > stochPeriod+3 {
		slowK, slowD := talib.Stoch(high, low, close, stochPeriod, 3, talib.SMA, 3, talib.SMA)
		indicators.StochK = lastValid(slowK)
		indicators.StochD = lastValid(slowD)
	}
	if n > atrPeriod {
		indicators.ATR = lastValid(talib.Atr(high, low, close, atrPeriod))
	}

	return indicators
}

// pivotLevels computes classic floor-trader pivots from the latest candle.
func pivotLevels(last eodhd.EODData) models.PriceLevels {
	pivot := (last.High + last.Low + last.Close) / 3
	return models.PriceLevels{
		Pivot:       pivot,
		Resistance1: 2*pivot - last.Low,
		Resistance2: pivot + (last.High - last.Low),
		Support1:    2*pivot - last.High,
		Support2:    pivot - (last.High - last.Low),
	}
}
