package marketdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	apperrors "smc-analyst/internal/errors"
)

const sampleCSV = `timestamp,open,high,low,close,volume
2024-03-01 09:00:00,100,100.5,99.5,100.2,1500
2024-03-01 10:00:00,100.2,100.8,100,100.6,1800
2024-03-01 11:00:00,100.6,101.2,100.4,101,2100
`

func writeCandleFile(t *testing.T, dir, symbol, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, symbol+".csv"), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestCSVProvider_Candles(t *testing.T) {
	dir := t.TempDir()
	writeCandleFile(t, dir, "EURUSD", sampleCSV)

	provider := NewCSVProvider(dir, zerolog.Nop())
	series, err := provider.Candles(context.Background(), "eurusd")
	if err != nil {
		t.Fatalf("Candles: %v", err)
	}

	if series.Len() != 3 {
		t.Fatalf("len = %d, want 3", series.Len())
	}
	if series.At(0).Close != 100.2 {
		t.Errorf("first close = %g, want 100.2", series.At(0).Close)
	}
	if series.Last().Volume != 2100 {
		t.Errorf("last volume = %g, want 2100", series.Last().Volume)
	}
	if !series.At(0).Timestamp.Before(series.At(1).Timestamp) {
		t.Error("candles must be time ascending")
	}
}

func TestCSVProvider_Quote(t *testing.T) {
	dir := t.TempDir()
	writeCandleFile(t, dir, "EURUSD", sampleCSV)

	provider := NewCSVProvider(dir, zerolog.Nop())
	quote, err := provider.Quote(context.Background(), "eurusd")
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}

	if quote.Symbol != "EURUSD" {
		t.Errorf("symbol = %q, want EURUSD", quote.Symbol)
	}
	if quote.Price != 101 {
		t.Errorf("price = %g, want last close 101", quote.Price)
	}
}

func TestCSVProvider_MissingSymbol(t *testing.T) {
	provider := NewCSVProvider(t.TempDir(), zerolog.Nop())

	_, err := provider.Candles(context.Background(), "GBPUSD")
	if !apperrors.Is(err, apperrors.ErrDataUnavailable) {
		t.Fatalf("expected data unavailable error, got %v", err)
	}
	var dataErr *apperrors.DataUnavailableError
	if !apperrors.As(err, &dataErr) {
		t.Fatalf("expected DataUnavailableError, got %T", err)
	}
	if dataErr.Symbol != "GBPUSD" {
		t.Errorf("symbol = %q, want GBPUSD", dataErr.Symbol)
	}
}

func TestCSVProvider_RejectsPathTraversal(t *testing.T) {
	provider := NewCSVProvider(t.TempDir(), zerolog.Nop())

	for _, symbol := range []string{"", "../etc/passwd", "EUR/USD", "a b"} {
		if _, err := provider.Candles(context.Background(), symbol); !apperrors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("symbol %q: expected invalid input error, got %v", symbol, err)
		}
	}
}

func TestCSVProvider_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	writeCandleFile(t, dir, "BAD", "timestamp,open,high,low,close,volume\nnot-a-date,1,2,0.5,1.5,100\n")

	provider := NewCSVProvider(dir, zerolog.Nop())
	if _, err := provider.Candles(context.Background(), "BAD"); !apperrors.Is(err, apperrors.ErrDataUnavailable) {
		t.Fatalf("expected data unavailable error, got %v", err)
	}
}
