// Package models provides domain models for the analysis engine.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Bias represents a directional market bias.
type Bias string

const (
	BiasBullish Bias = "bullish"
	BiasBearish Bias = "bearish"
)

// ParseBias parses a bias label case-insensitively.
func ParseBias(s string) (Bias, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bullish", "bull", "long":
		return BiasBullish, nil
	case "bearish", "bear", "short":
		return BiasBearish, nil
	default:
		return "", fmt.Errorf("unknown bias %q (want bullish or bearish)", s)
	}
}

// Valid reports whether the bias is one of the known values.
func (b Bias) Valid() bool {
	return b == BiasBullish || b == BiasBearish
}

// TrendLabel represents the trend reading from the indicator snapshot.
type TrendLabel string

const (
	TrendBullish TrendLabel = "bullish"
	TrendBearish TrendLabel = "bearish"
	TrendUnknown TrendLabel = "unknown"
)

// Determinate reports whether the trend resolved to a direction.
func (t TrendLabel) Determinate() bool {
	return t == TrendBullish || t == TrendBearish
}

// AssetClass represents the category of a tradeable instrument.
// Position sizing policy differs per class: forex instruments use the
// standard-lot pip convention, everything else sizes in raw price units.
type AssetClass string

const (
	AssetForex     AssetClass = "forex"
	AssetEquity    AssetClass = "equity"
	AssetCrypto    AssetClass = "crypto"
	AssetCommodity AssetClass = "commodity"
	AssetOther     AssetClass = "other"
)

// ParseAssetClass maps a free-form asset label onto the closed set of
// asset categories. Unrecognized labels fall into AssetOther rather
// than failing, since the label only selects a sizing policy.
func ParseAssetClass(label string) AssetClass {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.Contains(l, "forex"), strings.Contains(l, "fx"),
		strings.Contains(l, "currency"):
		return AssetForex
	case strings.Contains(l, "stock"), strings.Contains(l, "equity"),
		strings.Contains(l, "share"), strings.Contains(l, "index"):
		return AssetEquity
	case strings.Contains(l, "crypto"), strings.Contains(l, "btc"),
		strings.Contains(l, "coin"):
		return AssetCrypto
	case strings.Contains(l, "commodity"), strings.Contains(l, "gold"),
		strings.Contains(l, "metal"), strings.Contains(l, "oil"):
		return AssetCommodity
	default:
		return AssetOther
	}
}

// PipFactor returns the multiplier converting a raw price distance
// into the instrument's pip convention.
func (a AssetClass) PipFactor() float64 {
	if a == AssetForex {
		return 10000
	}
	return 1
}

// Candle represents OHLCV data for a time period.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// Bullish reports whether the candle closed above its open.
func (c Candle) Bullish() bool {
	return c.Close > c.Open
}

// Bearish reports whether the candle closed below its open.
func (c Candle) Bearish() bool {
	return c.Close < c.Open
}

// Quote represents the latest market quote for a symbol.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Volume    float64   `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
}
