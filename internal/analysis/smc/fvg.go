package smc

import (
	"smc-analyst/internal/config"
	"smc-analyst/internal/models"
)

// FairValueGapDetector finds three-candle price imbalances where the
// middle candle's expansion leaves an untraded gap.
type FairValueGapDetector struct {
	minGapFrac float64
	maxResults int
}

// NewFairValueGapDetector builds a detector from detection thresholds.
func NewFairValueGapDetector(cfg config.DetectionConfig) *FairValueGapDetector {
	return &FairValueGapDetector{
		minGapFrac: cfg.MinGapPercent / 100,
		maxResults: cfg.MaxFairValueGaps,
	}
}

// Detect scans each middle index for a bullish gap (next low above the
// prior high) or bearish gap (next high below the prior low). Gaps
// smaller than the configured fraction of the middle close are noise
// and dropped. Returns up to maxResults of the most recent gaps in
// chronological order. Fewer than three candles yields no gaps.
func (d *FairValueGapDetector) Detect(series *models.CandleSeries) []models.FairValueGap {
	gaps := []models.FairValueGap{}
	if series == nil || series.Len() < 3 {
		return gaps
	}

	n := series.Len()
	for i := 1; i <= n-2; i++ {
		prev := series.At(i - 1)
		mid := series.At(i)
		next := series.At(i + 1)

		var gap models.FairValueGap
		switch {
		case next.Low > prev.High:
			gap = models.FairValueGap{
				Type:  models.SignalBullish,
				Upper: next.Low,
				Lower: prev.High,
			}
		case next.High < prev.Low:
			gap = models.FairValueGap{
				Type:  models.SignalBearish,
				Upper: prev.Low,
				Lower: next.High,
			}
		default:
			continue
		}

		gap.Size = gap.Upper - gap.Lower
		if gap.Size <= d.minGapFrac*mid.Close {
			continue
		}
		gap.Midpoint = (gap.Upper + gap.Lower) / 2
		gaps = append(gaps, gap)
	}

	if len(gaps) > d.maxResults {
		gaps = gaps[len(gaps)-d.maxResults:]
	}
	return gaps
}
