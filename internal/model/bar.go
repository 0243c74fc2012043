package model

import (
	"fmt"
	"math"
	"time"
)

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// ValidateSeries checks the preconditions every engine relies on: finite
// numeric fields, non-negative volume, and strictly increasing timestamps.
// Insufficient length is not an error here; short series simply produce
// undefined derived values.
func ValidateSeries(bars []OHLCV) error {
	for i, b := range bars {
		for _, v := range []float64{b.Open, b.High, b.Low, b.Close} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("bar %d: non-finite price value", i)
			}
		}
		if math.IsNaN(b.Volume) || b.Volume < 0 {
			return fmt.Errorf("bar %d: volume must be non-negative, got %v", i, b.Volume)
		}
		if b.High < b.Low {
			return fmt.Errorf("bar %d: high %v below low %v", i, b.High, b.Low)
		}
		if i > 0 && !bars[i-1].Time.Before(b.Time) {
			return fmt.Errorf("bar %d: timestamp %s not after previous %s",
				i, b.Time.Format(time.RFC3339), bars[i-1].Time.Format(time.RFC3339))
		}
	}
	return nil
}
