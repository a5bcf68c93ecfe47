package smc

import (
	"fmt"
	"math"
	"sort"

	"smc-analyst/internal/config"
	"smc-analyst/internal/models"
)

// LiquidityZoneDetector clusters equal highs and equal lows into
// resting-liquidity levels.
type LiquidityZoneDetector struct {
	decimals   int
	maxResults int
}

// NewLiquidityZoneDetector builds a detector from detection thresholds.
func NewLiquidityZoneDetector(cfg config.DetectionConfig) *LiquidityZoneDetector {
	return &LiquidityZoneDetector{
		decimals:   cfg.LevelDecimals,
		maxResults: cfg.MaxLiquidityZones,
	}
}

// Detect groups highs and lows rounded to the configured precision.
// Levels touched at least twice become zones: equal highs are buy-side
// liquidity, equal lows sell-side, with the touch count as strength.
// Strongest zones come first; ties keep buy-side before sell-side and
// lower prices before higher. Fewer than two candles yields no zones.
func (d *LiquidityZoneDetector) Detect(series *models.CandleSeries) []models.LiquidityZone {
	zones := []models.LiquidityZone{}
	if series == nil || series.Len() < 2 {
		return zones
	}

	highs := make(map[float64]int)
	lows := make(map[float64]int)
	for i := 0; i < series.Len(); i++ {
		c := series.At(i)
		highs[d.round(c.High)]++
		lows[d.round(c.Low)]++
	}

	zones = append(zones, d.collect(highs, models.ZoneBuySide, "Equal highs")...)
	zones = append(zones, d.collect(lows, models.ZoneSellSide, "Equal lows")...)

	sort.SliceStable(zones, func(i, j int) bool {
		return zones[i].Strength > zones[j].Strength
	})

	if len(zones) > d.maxResults {
		zones = zones[:d.maxResults]
	}
	return zones
}

func (d *LiquidityZoneDetector) collect(counts map[float64]int, side models.ZoneSide, label string) []models.LiquidityZone {
	levels := make([]float64, 0, len(counts))
	for level, count := range counts {
		if count >= 2 {
			levels = append(levels, level)
		}
	}
	sort.Float64s(levels)

	zones := make([]models.LiquidityZone, 0, len(levels))
	for _, level := range levels {
		zones = append(zones, models.LiquidityZone{
			Type:        side,
			Level:       level,
			Strength:    counts[level],
			Description: fmt.Sprintf("%s at %.*f", label, d.decimals, level),
		})
	}
	return zones
}

func (d *LiquidityZoneDetector) round(v float64) float64 {
	pow := math.Pow(10, float64(d.decimals))
	return math.Round(v*pow) / pow
}
