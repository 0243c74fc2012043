package collector

import "IchiVSA/internal/model"

// Fetcher defines the interface for fetching a bar series.
type Fetcher interface {
	FetchBars(symbol string, days int) ([]model.OHLCV, error)
	Name() string
}
