package smc

import (
	"math"
	"testing"

	"smc-analyst/internal/config"
	"smc-analyst/internal/models"
)

func TestFairValueGapDetector_Bullish(t *testing.T) {
	series := newTestSeries(t, []models.Candle{
		c(100.2, 100.5, 100, 100.4),
		c(100.3, 101.9, 100.2, 101.7),
		c(101.5, 102, 101, 101.8),
	})

	detector := NewFairValueGapDetector(config.Default().Detection)
	gaps := detector.Detect(series)

	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d: %+v", len(gaps), gaps)
	}
	g := gaps[0]
	if g.Type != models.SignalBullish {
		t.Errorf("type = %s, want bullish", g.Type)
	}
	if g.Upper != 101 || g.Lower != 100.5 {
		t.Errorf("bounds = [%g, %g], want [100.5, 101]", g.Lower, g.Upper)
	}
	if math.Abs(g.Midpoint-100.75) > 1e-9 {
		t.Errorf("midpoint = %g, want 100.75", g.Midpoint)
	}
	if math.Abs(g.Size-0.5) > 1e-9 {
		t.Errorf("size = %g, want 0.5", g.Size)
	}
}

func TestFairValueGapDetector_SuppressesSmallGaps(t *testing.T) {
	// Gap of 0.05 against a middle close of 101.7 sits below the
	// minimum size cutoff.
	series := newTestSeries(t, []models.Candle{
		c(100.2, 100.5, 100, 100.4),
		c(100.3, 101.9, 100.2, 101.7),
		c(101.5, 102, 100.55, 101.8),
	})

	detector := NewFairValueGapDetector(config.Default().Detection)
	gaps := detector.Detect(series)

	if len(gaps) != 0 {
		t.Fatalf("expected gap below threshold to be dropped, got %+v", gaps)
	}
}

func TestFairValueGapDetector_Bearish(t *testing.T) {
	series := newTestSeries(t, []models.Candle{
		c(99.7, 100, 99.5, 99.6),
		c(99.6, 99.65, 98.5, 98.6),
		c(98.8, 98.9, 98.3, 98.4),
	})

	detector := NewFairValueGapDetector(config.Default().Detection)
	gaps := detector.Detect(series)

	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d: %+v", len(gaps), gaps)
	}
	g := gaps[0]
	if g.Type != models.SignalBearish {
		t.Errorf("type = %s, want bearish", g.Type)
	}
	if g.Upper != 99.5 || g.Lower != 98.9 {
		t.Errorf("bounds = [%g, %g], want [98.9, 99.5]", g.Lower, g.Upper)
	}
	if math.Abs(g.Midpoint-99.2) > 1e-9 {
		t.Errorf("midpoint = %g, want 99.2", g.Midpoint)
	}
}

func TestFairValueGapDetector_KeepsMostRecent(t *testing.T) {
	// A rising staircase with disjoint ranges gaps at every interior
	// index: four gaps, detector keeps the newest three.
	candles := []models.Candle{}
	for i := 0; i < 6; i++ {
		lo := 100.0 + 2*float64(i)
		candles = append(candles, c(lo+0.1, lo+0.5, lo, lo+0.4))
	}
	series := newTestSeries(t, candles)

	detector := NewFairValueGapDetector(config.Default().Detection)
	gaps := detector.Detect(series)

	if len(gaps) != 3 {
		t.Fatalf("expected 3 gaps after truncation, got %d", len(gaps))
	}
	wantUpper := []float64{106, 108, 110}
	for i, g := range gaps {
		if g.Upper != wantUpper[i] {
			t.Errorf("gap %d upper = %g, want %g", i, g.Upper, wantUpper[i])
		}
	}
}

func TestFairValueGapDetector_InsufficientData(t *testing.T) {
	series := newTestSeries(t, []models.Candle{
		c(100.2, 100.5, 100, 100.4),
		c(100.3, 101.9, 100.2, 101.7),
	})

	detector := NewFairValueGapDetector(config.Default().Detection)
	gaps := detector.Detect(series)

	if len(gaps) != 0 {
		t.Fatalf("expected no gaps for 2 candles, got %d", len(gaps))
	}
}
