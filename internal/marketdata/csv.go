package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"

	apperrors "smc-analyst/internal/errors"
	"smc-analyst/internal/logging"
	"smc-analyst/internal/models"
)

const csvSource = "csv"

// candleRow is the on-disk CSV layout, one row per candle.
type candleRow struct {
	Timestamp string  `csv:"timestamp"`
	Open      float64 `csv:"open"`
	High      float64 `csv:"high"`
	Low       float64 `csv:"low"`
	Close     float64 `csv:"close"`
	Volume    float64 `csv:"volume"`
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CSVProvider reads candle history from per-symbol CSV files in a
// directory, e.g. dir/EURUSD.csv.
type CSVProvider struct {
	dir string
	log zerolog.Logger
}

// NewCSVProvider creates a provider over the given directory.
func NewCSVProvider(dir string, log zerolog.Logger) *CSVProvider {
	return &CSVProvider{dir: dir, log: log.With().Str("provider", csvSource).Logger()}
}

// Candles loads and validates the candle file for symbol.
func (p *CSVProvider) Candles(ctx context.Context, symbol string) (*models.CandleSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := sanitizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	log := logging.WithSymbol(p.log, name)

	path := filepath.Join(p.dir, name+".csv")
	f, err := os.Open(path)
	if err != nil {
		logging.LogDataFetch(log, csvSource, name, 0, time.Since(start), err)
		return nil, apperrors.NewDataUnavailableError(csvSource, name, err)
	}
	defer f.Close()

	var rows []candleRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, apperrors.NewDataUnavailableError(csvSource, name, err)
	}

	candles := make([]models.Candle, 0, len(rows))
	for i, row := range rows {
		ts, err := parseTimestamp(row.Timestamp)
		if err != nil {
			return nil, apperrors.NewDataUnavailableError(csvSource, name,
				fmt.Errorf("row %d: %w", i+1, err))
		}
		candles = append(candles, models.Candle{
			Timestamp: ts,
			Open:      row.Open,
			High:      row.High,
			Low:       row.Low,
			Close:     row.Close,
			Volume:    row.Volume,
		})
	}

	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})

	series, err := models.NewSeries(candles)
	if err != nil {
		return nil, apperrors.NewDataUnavailableError(csvSource, name, err)
	}

	logging.LogDataFetch(log, csvSource, name, series.Len(), time.Since(start), nil)
	return series, nil
}

// Quote derives the latest quote from the most recent candle.
func (p *CSVProvider) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	series, err := p.Candles(ctx, symbol)
	if err != nil {
		return nil, err
	}
	last := series.Last()
	return &models.Quote{
		Symbol:    strings.ToUpper(strings.TrimSpace(symbol)),
		Price:     last.Close,
		Open:      last.Open,
		High:      last.High,
		Low:       last.Low,
		Volume:    last.Volume,
		Timestamp: last.Timestamp,
	}, nil
}

// LoadFile reads a single candle CSV by path, for CLI use where the
// caller points at a file rather than a symbol directory.
func LoadFile(path string) (*models.CandleSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewDataUnavailableError(csvSource, path, err)
	}
	defer f.Close()

	var rows []candleRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, apperrors.NewDataUnavailableError(csvSource, path, err)
	}

	candles := make([]models.Candle, 0, len(rows))
	for i, row := range rows {
		ts, err := parseTimestamp(row.Timestamp)
		if err != nil {
			return nil, apperrors.NewDataUnavailableError(csvSource, path,
				fmt.Errorf("row %d: %w", i+1, err))
		}
		candles = append(candles, models.Candle{
			Timestamp: ts,
			Open:      row.Open,
			High:      row.High,
			Low:       row.Low,
			Close:     row.Close,
			Volume:    row.Volume,
		})
	}

	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp.Before(candles[j].Timestamp)
	})

	series, err := models.NewSeries(candles)
	if err != nil {
		return nil, apperrors.NewDataUnavailableError(csvSource, path, err)
	}
	return series, nil
}

// sanitizeSymbol normalizes a symbol for use as a file name and
// rejects anything that could escape the data directory.
func sanitizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", apperrors.NewValidationError("symbol", symbol, "must not be empty")
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return "", apperrors.NewValidationError("symbol", symbol, "contains invalid characters")
		}
	}
	return s, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
