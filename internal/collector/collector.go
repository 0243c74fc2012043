package collector

import (
	"fmt"
	"time"

	"IchiVSA/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars []model.OHLCV
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ string, days int) ([]model.OHLCV, error) {
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateMockBars(5000, days), nil
}

// GenerateMockBars builds a mildly trending synthetic series around a base
// price, for development runs without a data source.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches and validates the bar series fed into the analyzer.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
	Days    int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, days int) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Days: days}
}

// Collect fetches the series and checks the analyzer's preconditions.
func (c *Collector) Collect() ([]model.OHLCV, error) {
	bars, err := c.Fetcher.FetchBars(c.Symbol, c.Days)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s returned no bars for %s", c.Fetcher.Name(), c.Symbol)
	}
	if err := model.ValidateSeries(bars); err != nil {
		return nil, fmt.Errorf("series from %s: %w", c.Fetcher.Name(), err)
	}
	return bars, nil
}
