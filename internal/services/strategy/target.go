package strategy

import (
	"math"

	"github.com/ternarybob/consilium/internal/common"
	"github.com/ternarybob/consilium/internal/models"
)

const (
	fairPECap       = 40.0
	fairPEExpansion = 1.2
)

// targetPrice projects a low/mid/high range. With a positive PE and
// growing revenue the mid is a fair-PE re-rating of the current price;
// otherwise it falls back to the nearest resistance level.
func targetPrice(price float64, f *models.FundamentalProfile, t *models.TechnicalProfile) models.TargetPrice {
	if price == 0 {
		return models.TargetPrice{}
	}

	resistance := price * 1.1
	if t != nil && t.Levels.Resistance1 > 0 {
		resistance = t.Levels.Resistance1
	}

	var pe, growth float64
	if f != nil {
		if f.Metrics.PERatio != nil {
			pe = *f.Metrics.PERatio
		}
		if f.Metrics.RevenueGrowth != nil {
			growth = *f.Metrics.RevenueGrowth
		}
	}

	var mid float64
	if pe > 0 && growth > 0 {
		fairPE := math.Min(pe*fairPEExpansion, fairPECap)
		mid = price * (fairPE / pe)
	} else {
		mid = resistance
	}

	low := price * 0.95
	high := math.Min(mid*1.1, resistance*1.05)
	upside := ((mid - price) / price) * 100

	return models.TargetPrice{
		Low:           common.Round2(low),
		Mid:           common.Round2(mid),
		High:          common.Round2(high),
		UpsidePercent: round1(upside),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
