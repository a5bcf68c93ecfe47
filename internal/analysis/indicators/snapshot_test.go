package indicators

import (
	"context"
	"math"
	"testing"
	"time"

	"smc-analyst/internal/models"
)

func risingSeries(t *testing.T, n int) *models.CandleSeries {
	t.Helper()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, n)
	for i := range candles {
		open := 100 + 0.5*float64(i)
		candles[i] = models.Candle{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Open:      open,
			High:      open + 0.6,
			Low:       open - 0.1,
			Close:     open + 0.5,
			Volume:    1000 + float64(i),
		}
	}
	series, err := models.NewSeries(candles)
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	return series
}

func TestSnapshotter_RisingSeries(t *testing.T) {
	series := risingSeries(t, 60)

	snap, err := NewSnapshotter(4).Take(context.Background(), series)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}

	if snap.Trend != models.TrendBullish {
		t.Errorf("trend = %s, want bullish (close above SMA20)", snap.Trend)
	}
	if snap.SMA20 == nil || snap.SMA50 == nil {
		t.Fatal("expected both moving averages on a 60 candle series")
	}
	// SMA20 of the last 20 closes of a 0.5 step ramp.
	closes := 0.0
	for i := 40; i < 60; i++ {
		closes += 100.5 + 0.5*float64(i)
	}
	if math.Abs(*snap.SMA20-closes/20) > 1e-9 {
		t.Errorf("sma20 = %g, want %g", *snap.SMA20, closes/20)
	}
	if snap.RSI == nil || *snap.RSI != 100 {
		t.Errorf("rsi = %v, want 100 for a monotone rise", snap.RSI)
	}
	if snap.MACD == nil || snap.MACDSignal == nil {
		t.Error("expected MACD values on a 60 candle series")
	}
	if snap.BollingerUp == nil || snap.BollingerLow == nil {
		t.Error("expected Bollinger bands on a 60 candle series")
	}
	if snap.AverageVolume == nil {
		t.Error("expected average volume")
	}
}

func TestSnapshotter_ShortSeries(t *testing.T) {
	series := risingSeries(t, 5)

	snap, err := NewSnapshotter(4).Take(context.Background(), series)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}

	if snap.Trend != models.TrendUnknown {
		t.Errorf("trend = %s, want unknown without SMA warmup", snap.Trend)
	}
	if snap.SMA20 != nil || snap.RSI != nil || snap.MACD != nil {
		t.Error("expected nil indicator values on a short series")
	}
	if snap.AverageVolume == nil {
		t.Error("average volume is defined for any non-empty series")
	}
}
