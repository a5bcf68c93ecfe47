// Package marketdata defines the boundary to candle data sources.
// Providers surface real data or an explicit unavailability error,
// never fabricated fallback values.
package marketdata

import (
	"context"

	"smc-analyst/internal/models"
)

// Provider supplies candle history and quotes for a symbol.
type Provider interface {
	// Candles returns the available history for symbol ordered by time
	// ascending. A missing or unreadable source yields an error
	// matching errors.ErrDataUnavailable.
	Candles(ctx context.Context, symbol string) (*models.CandleSeries, error)

	// Quote returns the latest known quote for symbol.
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
}
