package smc

import (
	"smc-analyst/internal/config"
	"smc-analyst/internal/models"
)

// OrderBlockDetector finds three-candle institutional accumulation and
// distribution patterns.
type OrderBlockDetector struct {
	strongMoveFrac float64
	maxResults     int
}

// NewOrderBlockDetector builds a detector from detection thresholds.
func NewOrderBlockDetector(cfg config.DetectionConfig) *OrderBlockDetector {
	return &OrderBlockDetector{
		strongMoveFrac: cfg.StrongMovePercent / 100,
		maxResults:     cfg.MaxOrderBlocks,
	}
}

// Detect scans each interior index for a bullish or bearish block and
// returns up to maxResults of the most recent matches in chronological
// order. Fewer than five candles yields no signals.
func (d *OrderBlockDetector) Detect(series *models.CandleSeries) []models.OrderBlock {
	blocks := []models.OrderBlock{}
	if series == nil || series.Len() < 5 {
		return blocks
	}

	n := series.Len()
	for i := 2; i <= n-3; i++ {
		first := series.At(i)
		second := series.At(i + 1)
		third := series.At(i + 2)

		move := third.Close - first.Close
		if move < 0 {
			move = -move
		}
		strength := models.StrengthMedium
		if move > d.strongMoveFrac*first.Close {
			strength = models.StrengthStrong
		}

		switch {
		case first.Bearish() && second.Bullish() && third.Close > second.Close:
			blocks = append(blocks, models.OrderBlock{
				Type:      models.SignalBullish,
				Level:     first.Low,
				Strength:  strength,
				Timestamp: first.Timestamp,
			})
		case first.Bullish() && second.Bearish() && third.Close < second.Close:
			blocks = append(blocks, models.OrderBlock{
				Type:      models.SignalBearish,
				Level:     first.High,
				Strength:  strength,
				Timestamp: first.Timestamp,
			})
		}
	}

	if len(blocks) > d.maxResults {
		blocks = blocks[len(blocks)-d.maxResults:]
	}
	return blocks
}
