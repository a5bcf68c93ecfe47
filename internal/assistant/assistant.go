// Package assistant orchestrates detection, indicators, risk, and
// scoring into a single market analysis.
package assistant

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"smc-analyst/internal/analysis/indicators"
	"smc-analyst/internal/analysis/scoring"
	"smc-analyst/internal/analysis/smc"
	apperrors "smc-analyst/internal/errors"
	"smc-analyst/internal/logging"
	"smc-analyst/internal/models"
	"smc-analyst/internal/risk"
)

// Request carries everything needed for one analysis pass.
type Request struct {
	Symbol      string
	Candles     []models.Candle
	Bias        models.Bias
	Price       float64
	Balance     float64
	RiskPercent float64
	AssetClass  models.AssetClass
}

// Analysis is the full result of one pass.
type Analysis struct {
	Timestamp         time.Time              `json:"timestamp"`
	Symbol            string                 `json:"symbol,omitempty"`
	CurrentPrice      float64                `json:"current_price"`
	OrderBlocks       []models.OrderBlock    `json:"order_blocks"`
	LiquidityZones    []models.LiquidityZone `json:"liquidity_zones"`
	FairValueGaps     []models.FairValueGap  `json:"fair_value_gaps"`
	Indicators        *indicators.Snapshot   `json:"indicators,omitempty"`
	TradeSetup        *models.TradeSetup     `json:"trade_setup"`
	Confidence        int                    `json:"confidence"`
	ConfluenceFactors []string               `json:"confluence_factors"`
	RiskWarnings      []string               `json:"risk_warnings"`
}

// riskWarnings is the fixed guidance attached to every analysis.
var riskWarnings = []string{
	"Never risk more than 1-2% of your account per trade",
	"Always use a stop loss",
	"Past performance does not guarantee future results",
	"This analysis is educational, not financial advice",
}

// Assistant wires the analysis components together.
type Assistant struct {
	analyzer    *smc.Analyzer
	snapshotter *indicators.Snapshotter
	calculator  *risk.Calculator
	scorer      *scoring.ConfidenceScorer
	log         zerolog.Logger
}

// New creates an assistant from pre-built components.
func New(analyzer *smc.Analyzer, snapshotter *indicators.Snapshotter, calculator *risk.Calculator, scorer *scoring.ConfidenceScorer, log zerolog.Logger) *Assistant {
	return &Assistant{
		analyzer:    analyzer,
		snapshotter: snapshotter,
		calculator:  calculator,
		scorer:      scorer,
		log:         log.With().Str("component", "assistant").Logger(),
	}
}

// Analyze runs detection, indicators, the trade calculator, and the
// confidence scorer over the request. An invalid candle series
// degrades the signal sets to empty, but calculator errors are fatal:
// trade parameters are never fabricated.
func (a *Assistant) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Analysis{
		Timestamp:      time.Now().UTC(),
		Symbol:         req.Symbol,
		CurrentPrice:   req.Price,
		OrderBlocks:    []models.OrderBlock{},
		LiquidityZones: []models.LiquidityZone{},
		FairValueGaps:  []models.FairValueGap{},
		RiskWarnings:   riskWarnings,
	}

	series, err := models.NewSeries(req.Candles)
	if err != nil {
		a.log.Warn().Str("symbol", req.Symbol).Err(err).Msg("candle series rejected, skipping detection")
	} else {
		report := a.analyzer.Analyze(series)
		result.OrderBlocks = report.OrderBlocks
		result.LiquidityZones = report.LiquidityZones
		result.FairValueGaps = report.FairValueGaps

		snap, snapErr := a.snapshotter.Take(ctx, series)
		if snapErr != nil {
			return nil, apperrors.Wrap(snapErr, "indicator snapshot")
		}
		result.Indicators = snap
	}

	setup, err := a.calculator.Compute(risk.Params{
		CurrentPrice: req.Price,
		Balance:      req.Balance,
		RiskPercent:  req.RiskPercent,
		Bias:         req.Bias,
		AssetClass:   req.AssetClass,
	})
	if err != nil {
		return nil, err
	}
	result.TradeSetup = setup

	result.ConfluenceFactors = a.confluence(result, series)
	result.Confidence = a.scorer.Score(scoring.Inputs{
		SignalCount: len(result.ConfluenceFactors),
		Trend:       trendOf(result.Indicators),
		RSI:         rsiOf(result.Indicators),
	})

	logging.LogAnalysis(a.log, req.Symbol, string(req.Bias), result.Confidence, len(result.ConfluenceFactors))
	a.log.Debug().
		Int("order_blocks", len(result.OrderBlocks)).
		Int("liquidity_zones", len(result.LiquidityZones)).
		Int("fair_value_gaps", len(result.FairValueGaps)).
		Msg("signal counts")

	return result, nil
}

// confluence names the concrete pieces of evidence backing the setup.
func (a *Assistant) confluence(r *Analysis, series *models.CandleSeries) []string {
	factors := []string{}

	for _, b := range r.OrderBlocks {
		if models.Bias(b.Type) == r.TradeSetup.Bias {
			factors = append(factors, "order block aligned with bias")
			break
		}
	}
	if len(r.LiquidityZones) > 0 {
		factors = append(factors, "liquidity zones mapped")
	}
	for _, g := range r.FairValueGaps {
		if models.Bias(g.Type) == r.TradeSetup.Bias {
			factors = append(factors, "fair value gap aligned with bias")
			break
		}
	}

	snap := r.Indicators
	if snap == nil {
		return factors
	}
	if snap.Trend.Determinate() && models.Bias(snap.Trend) == r.TradeSetup.Bias {
		factors = append(factors, "trend aligned with bias")
	}
	if snap.RSI != nil && *snap.RSI > 30 && *snap.RSI < 70 {
		factors = append(factors, "momentum not overextended")
	}
	if snap.AverageVolume != nil && series != nil && series.Last().Volume > *snap.AverageVolume {
		factors = append(factors, "volume above average")
	}

	return factors
}

func trendOf(snap *indicators.Snapshot) models.TrendLabel {
	if snap == nil {
		return models.TrendUnknown
	}
	return snap.Trend
}

func rsiOf(snap *indicators.Snapshot) *float64 {
	if snap == nil {
		return nil
	}
	return snap.RSI
}
