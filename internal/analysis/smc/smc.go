// Package smc provides Smart Money Concepts signal detection: order
// blocks, liquidity zones, and fair value gaps.
package smc

import (
	"sync"

	"smc-analyst/internal/config"
	"smc-analyst/internal/models"
)

// Report aggregates the output of one detection pass. The three result
// sets are independent; an empty slice means the series was too short
// or produced no signals, never an error.
type Report struct {
	OrderBlocks    []models.OrderBlock    `json:"order_blocks"`
	LiquidityZones []models.LiquidityZone `json:"liquidity_zones"`
	FairValueGaps  []models.FairValueGap  `json:"fair_value_gaps"`
}

// Analyzer runs the three SMC detectors over a candle series.
type Analyzer struct {
	blocks *OrderBlockDetector
	zones  *LiquidityZoneDetector
	gaps   *FairValueGapDetector
}

// NewAnalyzer creates an analyzer with the given detection thresholds.
func NewAnalyzer(cfg config.DetectionConfig) *Analyzer {
	return &Analyzer{
		blocks: NewOrderBlockDetector(cfg),
		zones:  NewLiquidityZoneDetector(cfg),
		gaps:   NewFairValueGapDetector(cfg),
	}
}

// Analyze runs the detectors in parallel over the same read-only
// series. Detectors are pure and share no state, so no synchronization
// beyond the join is needed.
func (a *Analyzer) Analyze(series *models.CandleSeries) *Report {
	report := &Report{}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		report.OrderBlocks = a.blocks.Detect(series)
	}()
	go func() {
		defer wg.Done()
		report.LiquidityZones = a.zones.Detect(series)
	}()
	go func() {
		defer wg.Done()
		report.FairValueGaps = a.gaps.Detect(series)
	}()
	wg.Wait()

	return report
}
