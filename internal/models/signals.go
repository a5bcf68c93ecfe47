package models

import "time"

// SignalDirection represents the direction of a detected signal.
type SignalDirection string

const (
	SignalBullish SignalDirection = "bullish"
	SignalBearish SignalDirection = "bearish"
)

// BlockStrength grades an order block by the size of the move away
// from it.
type BlockStrength string

const (
	StrengthMedium BlockStrength = "medium"
	StrengthStrong BlockStrength = "strong"
)

// OrderBlock represents a candle presumed to contain a concentration
// of institutional orders, acting as a future support or resistance
// level.
type OrderBlock struct {
	Type      SignalDirection `json:"type"`
	Level     float64         `json:"level"`
	Strength  BlockStrength   `json:"strength"`
	Timestamp time.Time       `json:"timestamp"`
}

// ZoneSide distinguishes liquidity resting above highs from liquidity
// resting below lows.
type ZoneSide string

const (
	ZoneBuySide  ZoneSide = "buy_side"
	ZoneSellSide ZoneSide = "sell_side"
)

// LiquidityZone represents a price level visited multiple times,
// presumed to accumulate resting stop orders.
type LiquidityZone struct {
	Type        ZoneSide `json:"type"`
	Level       float64  `json:"level"`
	Strength    int      `json:"strength"`
	Description string   `json:"description"`
}

// FairValueGap represents a three-candle price imbalance. Upper is
// always greater than or equal to Lower regardless of direction.
type FairValueGap struct {
	Type     SignalDirection `json:"type"`
	Upper    float64         `json:"upper"`
	Lower    float64         `json:"lower"`
	Midpoint float64         `json:"midpoint"`
	Size     float64         `json:"size"`
}

// Targets holds the take-profit ladder of a trade setup.
type Targets struct {
	TP1 float64 `json:"tp1"`
	TP2 float64 `json:"tp2"`
	TP3 float64 `json:"tp3"`
}

// TradeSetup holds the concrete trade parameters derived from a bias,
// the current price, and account risk settings. It is recomputed per
// request and never persisted.
type TradeSetup struct {
	Bias             Bias       `json:"bias"`
	Entry            float64    `json:"entry"`
	StopLoss         float64    `json:"stop_loss"`
	Targets          Targets    `json:"targets"`
	PositionSize     float64    `json:"position_size"`
	RiskAmount       float64    `json:"risk_amount"`
	RiskRewardRatios []float64  `json:"risk_reward_ratios"`
	PipRisk          float64    `json:"pip_risk"`
	AssetClass       AssetClass `json:"asset_class"`
}
