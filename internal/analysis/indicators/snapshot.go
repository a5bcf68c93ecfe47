package indicators

import (
	"context"

	"smc-analyst/internal/models"
)

// Snapshot holds the latest value of each indicator for a series. Nil
// fields mean the series was too short for that indicator's warmup.
type Snapshot struct {
	SMA20         *float64         `json:"sma_20,omitempty"`
	SMA50         *float64         `json:"sma_50,omitempty"`
	RSI           *float64         `json:"rsi,omitempty"`
	MACD          *float64         `json:"macd,omitempty"`
	MACDSignal    *float64         `json:"macd_signal,omitempty"`
	ATR           *float64         `json:"atr,omitempty"`
	BollingerUp   *float64         `json:"bollinger_upper,omitempty"`
	BollingerLow  *float64         `json:"bollinger_lower,omitempty"`
	AverageVolume *float64         `json:"average_volume,omitempty"`
	Trend         models.TrendLabel `json:"trend"`
}

// Snapshotter computes indicator snapshots using the parallel engine.
type Snapshotter struct {
	engine *Engine
}

// NewSnapshotter creates a snapshotter with the standard indicator set
// registered.
func NewSnapshotter(workers int) *Snapshotter {
	engine := NewEngine(workers)
	engine.RegisterIndicator(NewSMA(20))
	engine.RegisterIndicator(NewSMA(50))
	engine.RegisterIndicator(NewRSI(14))
	engine.RegisterIndicator(NewATR(14))
	engine.RegisterMultiIndicator(NewMACD(12, 26, 9))
	engine.RegisterMultiIndicator(NewBollingerBands(20, 2.0))
	return &Snapshotter{engine: engine}
}

// Take computes a snapshot over the series. The trend reads bullish
// when the last close is above the 20-period SMA, bearish when below,
// and unknown when there is not enough data for the SMA.
func (s *Snapshotter) Take(ctx context.Context, series *models.CandleSeries) (*Snapshot, error) {
	candles := series.Candles()
	single, multi, err := s.engine.CalculateAll(ctx, candles)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := &Snapshot{Trend: models.TrendUnknown}
	snap.SMA20 = lastValue(single["SMA_20"])
	snap.SMA50 = lastValue(single["SMA_50"])
	snap.RSI = lastValue(single["RSI_14"])
	snap.ATR = lastValue(single["ATR_14"])

	if macd, ok := multi["MACD_12_26_9"]; ok {
		snap.MACD = lastValue(macd["macd"])
		snap.MACDSignal = lastValue(macd["signal"])
	}
	if bb, ok := multi["BollingerBands_20_2.0"]; ok {
		snap.BollingerUp = lastValue(bb["upper"])
		snap.BollingerLow = lastValue(bb["lower"])
	}

	var totalVolume float64
	for _, c := range candles {
		totalVolume += c.Volume
	}
	avg := totalVolume / float64(len(candles))
	snap.AverageVolume = &avg

	if snap.SMA20 != nil {
		if series.Last().Close > *snap.SMA20 {
			snap.Trend = models.TrendBullish
		} else {
			snap.Trend = models.TrendBearish
		}
	}

	return snap, nil
}

func lastValue(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	v := values[len(values)-1]
	return &v
}
