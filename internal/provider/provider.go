// Package provider fetches price snapshots from market data sources.
package provider

import (
	"context"

	"trend-screener/internal/models"
)

// DataProvider fetches a fresh price snapshot for one symbol. Implementations
// fail with ErrSymbolNotFound, ErrRateLimited or ErrTimeout; the scan loop
// treats all three as per-symbol and recoverable.
type DataProvider interface {
	FetchSnapshot(ctx context.Context, symbol string) (models.PriceSnapshot, error)
}

// Func adapts a plain function to the DataProvider interface.
type Func func(ctx context.Context, symbol string) (models.PriceSnapshot, error)

// FetchSnapshot implements DataProvider.
func (f Func) FetchSnapshot(ctx context.Context, symbol string) (models.PriceSnapshot, error) {
	return f(ctx, symbol)
}
