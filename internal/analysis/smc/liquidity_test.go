package smc

import (
	"testing"

	"smc-analyst/internal/config"
	"smc-analyst/internal/models"
)

func TestLiquidityZoneDetector_EqualHighs(t *testing.T) {
	series := newTestSeries(t, []models.Candle{
		c(100, 100.25, 99.50, 100.1),
		c(100.1, 100.25, 99.61, 99.9),
		c(99.9, 100.25, 99.72, 100.0),
		c(100, 100.31, 99.83, 100.05),
		c(100.05, 100.18, 99.94, 100.11),
	})

	detector := NewLiquidityZoneDetector(config.Default().Detection)
	zones := detector.Detect(series)

	if len(zones) != 1 {
		t.Fatalf("expected 1 zone, got %d: %+v", len(zones), zones)
	}
	z := zones[0]
	if z.Type != models.ZoneBuySide {
		t.Errorf("type = %s, want buy_side", z.Type)
	}
	if z.Level != 100.25 {
		t.Errorf("level = %g, want 100.25", z.Level)
	}
	if z.Strength != 3 {
		t.Errorf("strength = %d, want 3 touches", z.Strength)
	}
	if z.Description != "Equal highs at 100.25" {
		t.Errorf("description = %q", z.Description)
	}
}

func TestLiquidityZoneDetector_Ordering(t *testing.T) {
	series := newTestSeries(t, []models.Candle{
		c(100, 101, 99, 100.5),
		c(100.5, 101, 99, 100.2),
		c(100.2, 101, 98, 100.0),
		c(100, 102, 98, 101.0),
		c(101, 102, 97, 100.5),
		c(100.5, 103, 96, 101.5),
	})

	detector := NewLiquidityZoneDetector(config.Default().Detection)
	zones := detector.Detect(series)

	// Strength descending, then buy-side ascending before sell-side
	// ascending for ties.
	want := []models.LiquidityZone{
		{Type: models.ZoneBuySide, Level: 101, Strength: 3},
		{Type: models.ZoneBuySide, Level: 102, Strength: 2},
		{Type: models.ZoneSellSide, Level: 98, Strength: 2},
		{Type: models.ZoneSellSide, Level: 99, Strength: 2},
	}
	if len(zones) != len(want) {
		t.Fatalf("expected %d zones, got %d: %+v", len(want), len(zones), zones)
	}
	for i, w := range want {
		if zones[i].Type != w.Type || zones[i].Level != w.Level || zones[i].Strength != w.Strength {
			t.Errorf("zone %d = {%s %g %d}, want {%s %g %d}",
				i, zones[i].Type, zones[i].Level, zones[i].Strength, w.Type, w.Level, w.Strength)
		}
	}
}

func TestLiquidityZoneDetector_RoundsToTwoDecimals(t *testing.T) {
	series := newTestSeries(t, []models.Candle{
		c(100, 100.254, 99.10, 100.1),
		c(100.1, 100.246, 99.30, 100.0),
	})

	detector := NewLiquidityZoneDetector(config.Default().Detection)
	zones := detector.Detect(series)

	if len(zones) != 1 {
		t.Fatalf("expected 1 zone from rounded highs, got %d: %+v", len(zones), zones)
	}
	if zones[0].Level != 100.25 || zones[0].Strength != 2 {
		t.Errorf("zone = {%g %d}, want {100.25 2}", zones[0].Level, zones[0].Strength)
	}
}

func TestLiquidityZoneDetector_Truncates(t *testing.T) {
	candles := []models.Candle{}
	// Six doubled high levels, all lows distinct.
	for g := 0; g < 6; g++ {
		high := 101.0 + float64(g)
		candles = append(candles,
			c(high-0.5, high, high-1.0-float64(g)*0.01, high-0.2),
			c(high-0.2, high, high-1.1-float64(g)*0.01, high-0.3),
		)
	}
	series := newTestSeries(t, candles)

	detector := NewLiquidityZoneDetector(config.Default().Detection)
	zones := detector.Detect(series)

	if len(zones) != 5 {
		t.Fatalf("expected 5 zones after truncation, got %d", len(zones))
	}
	for i, z := range zones {
		want := 101.0 + float64(i)
		if z.Level != want {
			t.Errorf("zone %d level = %g, want %g", i, z.Level, want)
		}
	}
}

func TestLiquidityZoneDetector_InsufficientData(t *testing.T) {
	series := newTestSeries(t, []models.Candle{
		c(100, 100.25, 99.5, 100.1),
	})

	detector := NewLiquidityZoneDetector(config.Default().Detection)
	zones := detector.Detect(series)

	if len(zones) != 0 {
		t.Fatalf("expected no zones for a single candle, got %d", len(zones))
	}
}
