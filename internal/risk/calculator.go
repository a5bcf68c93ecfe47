// Package risk derives concrete trade parameters from a directional
// bias and account risk settings.
package risk

import (
	"math"

	"smc-analyst/internal/config"
	apperrors "smc-analyst/internal/errors"
	"smc-analyst/internal/models"
	"smc-analyst/pkg/utils"
)

// Params are the inputs for a full trade setup computation.
type Params struct {
	CurrentPrice float64
	Balance      float64
	RiskPercent  float64
	Bias         models.Bias
	AssetClass   models.AssetClass
}

// SizeResult holds the outputs of a standalone position size
// computation from explicit entry and stop levels.
type SizeResult struct {
	PositionSize float64 `json:"position_size"`
	RiskAmount   float64 `json:"risk_amount"`
	PipRisk      float64 `json:"pip_risk"`
}

// Calculator computes trade setups. The stop distance and entry offset
// come from configuration rather than being fixed constants.
type Calculator struct {
	cfg config.RiskConfig
}

// NewCalculator creates a calculator with the given risk settings.
func NewCalculator(cfg config.RiskConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Compute derives entry, stop, targets, and position size for the
// given bias. The entry is offset from the current price in the
// direction of the trade, the stop sits one volatility unit beyond it,
// and the three targets ladder out at 1x, 2x, and 3x that unit.
func (c *Calculator) Compute(p Params) (*models.TradeSetup, error) {
	if err := c.validate(p); err != nil {
		return nil, err
	}

	stopDistance := p.CurrentPrice * c.cfg.ATRPercent / 100
	offset := c.cfg.EntryOffsetPercent / 100

	var entry, stop float64
	var targets models.Targets
	if p.Bias == models.BiasBullish {
		entry = p.CurrentPrice * (1 - offset)
		stop = entry - stopDistance
		targets = models.Targets{
			TP1: entry + stopDistance,
			TP2: entry + 2*stopDistance,
			TP3: entry + 3*stopDistance,
		}
	} else {
		entry = p.CurrentPrice * (1 + offset)
		stop = entry + stopDistance
		targets = models.Targets{
			TP1: entry - stopDistance,
			TP2: entry - 2*stopDistance,
			TP3: entry - 3*stopDistance,
		}
	}

	riskAmount := p.Balance * p.RiskPercent / 100
	pipRisk := math.Abs(entry - stop)
	if pipRisk == 0 {
		return nil, &apperrors.ZeroRiskDistanceError{Entry: entry, StopLoss: stop}
	}

	size, reportedPipRisk := c.size(riskAmount, pipRisk, p.AssetClass)

	return &models.TradeSetup{
		Bias:             p.Bias,
		Entry:            utils.Round2(entry),
		StopLoss:         utils.Round2(stop),
		Targets: models.Targets{
			TP1: utils.Round2(targets.TP1),
			TP2: utils.Round2(targets.TP2),
			TP3: utils.Round2(targets.TP3),
		},
		PositionSize:     utils.Round2(size),
		RiskAmount:       utils.Round2(riskAmount),
		RiskRewardRatios: []float64{1, 2, 3},
		PipRisk:          reportedPipRisk,
		AssetClass:       p.AssetClass,
	}, nil
}

// PositionSize computes sizing from explicit entry and stop levels, as
// used when the caller already has their own levels.
func (c *Calculator) PositionSize(balance, riskPercent, entry, stopLoss float64, class models.AssetClass) (*SizeResult, error) {
	if entry <= 0 {
		return nil, apperrors.NewValidationError("entry", entry, "must be positive")
	}
	if stopLoss <= 0 {
		return nil, apperrors.NewValidationError("stop_loss", stopLoss, "must be positive")
	}
	if balance < 0 {
		return nil, apperrors.NewValidationError("balance", balance, "must not be negative")
	}
	if riskPercent <= 0 || riskPercent > 100 {
		return nil, apperrors.NewValidationError("risk_percent", riskPercent, "must be in (0, 100]")
	}

	riskAmount := balance * riskPercent / 100
	pipRisk := math.Abs(entry - stopLoss)
	if pipRisk == 0 {
		return nil, &apperrors.ZeroRiskDistanceError{Entry: entry, StopLoss: stopLoss}
	}

	size, reportedPipRisk := c.size(riskAmount, pipRisk, class)

	return &SizeResult{
		PositionSize: utils.Round2(size),
		RiskAmount:   utils.Round2(riskAmount),
		PipRisk:      reportedPipRisk,
	}, nil
}

// size converts a dollar risk and price distance into units. Forex
// instruments size in standard lots using the pip convention, other
// classes size in raw units of the instrument.
func (c *Calculator) size(riskAmount, pipRisk float64, class models.AssetClass) (size, reportedPipRisk float64) {
	if class == models.AssetForex {
		pips := pipRisk * class.PipFactor()
		return riskAmount / (pips * c.cfg.ForexPipValue), utils.Round1(pips)
	}
	return riskAmount / pipRisk, utils.Round1(pipRisk)
}

func (c *Calculator) validate(p Params) error {
	if p.CurrentPrice <= 0 {
		return apperrors.NewValidationError("current_price", p.CurrentPrice, "must be positive")
	}
	if p.Balance < 0 {
		return apperrors.NewValidationError("balance", p.Balance, "must not be negative")
	}
	if p.RiskPercent <= 0 || p.RiskPercent > 100 {
		return apperrors.NewValidationError("risk_percent", p.RiskPercent, "must be in (0, 100]")
	}
	if !p.Bias.Valid() {
		return apperrors.NewValidationError("bias", p.Bias, "must be bullish or bearish")
	}
	return nil
}
