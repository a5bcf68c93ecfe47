package models

import (
	"fmt"
	"math"
)

// CandleSeries is an ordered, immutable view over OHLCV data. It is
// validated once at construction so detectors can index it without
// re-checking candle invariants.
type CandleSeries struct {
	candles []Candle
}

// NewSeries builds a CandleSeries from candles ordered by time
// ascending. It rejects empty input, non-monotonic timestamps,
// non-finite or non-positive prices, negative volume, and candles
// violating low <= min(open,close) <= max(open,close) <= high.
func NewSeries(candles []Candle) (*CandleSeries, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("empty candle series")
	}

	owned := make([]Candle, len(candles))
	copy(owned, candles)

	for i, c := range owned {
		if err := validateCandle(c); err != nil {
			return nil, fmt.Errorf("candle %d: %w", i, err)
		}
		if i > 0 && !c.Timestamp.After(owned[i-1].Timestamp) {
			return nil, fmt.Errorf("candle %d: timestamp %s not after previous %s",
				i, c.Timestamp, owned[i-1].Timestamp)
		}
	}

	return &CandleSeries{candles: owned}, nil
}

func validateCandle(c Candle) error {
	for _, v := range []float64{c.Open, c.High, c.Low, c.Close, c.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite value")
		}
	}
	if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
		return fmt.Errorf("non-positive price")
	}
	if c.Volume < 0 {
		return fmt.Errorf("negative volume")
	}
	body := math.Min(c.Open, c.Close)
	top := math.Max(c.Open, c.Close)
	if c.Low > body || c.High < top {
		return fmt.Errorf("range [%g, %g] does not contain body [%g, %g]",
			c.Low, c.High, body, top)
	}
	return nil
}

// Len returns the number of candles in the series.
func (s *CandleSeries) Len() int {
	return len(s.candles)
}

// At returns the candle at index i (0-based, time ascending).
func (s *CandleSeries) At(i int) Candle {
	return s.candles[i]
}

// Last returns the most recent candle.
func (s *CandleSeries) Last() Candle {
	return s.candles[len(s.candles)-1]
}

// Candles returns a copy of the underlying candles. Callers own the
// returned slice.
func (s *CandleSeries) Candles() []Candle {
	out := make([]Candle, len(s.candles))
	copy(out, s.candles)
	return out
}
