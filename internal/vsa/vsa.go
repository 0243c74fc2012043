// Package vsa implements Volume Spread Analysis: rolling spread and volume
// baselines, seven categorical bar patterns, and the aggregate net score.
package vsa

import (
	"errors"
	"fmt"

	"IchiVSA/internal/calculator"
	"IchiVSA/internal/model"
)

// ErrInvalidConfig reports a non-positive window or factor at construction.
var ErrInvalidConfig = errors.New("invalid vsa configuration")

// Defaults for the rolling baseline and the volume thresholds.
const (
	DefaultWindow           = 20
	DefaultHighVolumeFactor = 1.5
	DefaultLowVolumeFactor  = 0.7
)

// Spread classification factors are fixed, not configurable.
const (
	narrowSpreadFactor = 0.7
	wideSpreadFactor   = 1.3
)

// closePositionEpsilon keeps zero-spread bars from dividing by zero.
const closePositionEpsilon = 1e-10

// VSA holds the configured baseline window and volume factors.
type VSA struct {
	Window           int
	HighVolumeFactor float64
	LowVolumeFactor  float64
}

// New validates the parameters and returns a configured engine.
func New(window int, highFactor, lowFactor float64) (*VSA, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %d", ErrInvalidConfig, window)
	}
	if highFactor <= 0 {
		return nil, fmt.Errorf("%w: high volume factor must be positive, got %v", ErrInvalidConfig, highFactor)
	}
	if lowFactor <= 0 {
		return nil, fmt.Errorf("%w: low volume factor must be positive, got %v", ErrInvalidConfig, lowFactor)
	}
	return &VSA{Window: window, HighVolumeFactor: highFactor, LowVolumeFactor: lowFactor}, nil
}

// Defaults returns an engine with the standard 20-bar window and 1.5/0.7
// volume factors.
func Defaults() *VSA {
	v, _ := New(DefaultWindow, DefaultHighVolumeFactor, DefaultLowVolumeFactor)
	return v
}

// Calculate fills the spread/volume baseline fields in place. The rolling
// means are undefined for the first window-1 bars; the per-bar fields
// (spread, close position, bar direction) are always defined.
func (v *VSA) Calculate(recs []model.Record) {
	spreads := make([]float64, len(recs))
	volumes := make([]float64, len(recs))
	for i := range recs {
		spreads[i] = recs[i].High - recs[i].Low
		volumes[i] = recs[i].Volume
	}
	avgSpread := calculator.RollingMean(spreads, v.Window)
	avgVolume := calculator.RollingMean(volumes, v.Window)

	for i := range recs {
		r := &recs[i]
		r.Spread = spreads[i]
		r.AvgSpread = avgSpread[i]
		r.AvgVolume = avgVolume[i]

		r.HighVolume = model.Greater(r.Volume, r.AvgVolume*v.HighVolumeFactor)
		r.LowVolume = model.Less(r.Volume, r.AvgVolume*v.LowVolumeFactor)
		r.NarrowSpread = model.Less(r.Spread, r.AvgSpread*narrowSpreadFactor)
		r.WideSpread = model.Greater(r.Spread, r.AvgSpread*wideSpreadFactor)

		r.ClosePosition = (r.Close - r.Low) / (r.Spread + closePositionEpsilon)
		r.UpBar = r.Close > r.Open
		r.DownBar = r.Close < r.Open
	}
}

// Signals fills the seven pattern flags and the aggregate counts in place.
// Baselines are recomputed first, so calling Signals on a fresh record table
// works and repeated calls yield identical output.
//
// A pattern is undefined only when its rolling-baseline conjuncts are still
// in warm-up and no defined conjunct already decides it.
func (v *VSA) Signals(recs []model.Record) {
	v.Calculate(recs)

	for i := range recs {
		r := &recs[i]
		up := model.Bool(r.UpBar)
		down := model.Bool(r.DownBar)

		// Bullish-leaning patterns.
		r.NoDemand = down.And(r.LowVolume).And(r.NarrowSpread).
			And(model.Greater(r.ClosePosition, 0.5))
		r.NoSupply = up.And(r.LowVolume).And(r.NarrowSpread)
		r.StoppingVolume = down.And(r.HighVolume).And(r.NarrowSpread).
			And(model.Greater(r.ClosePosition, 0.3))
		r.SellingClimax = down.And(r.HighVolume).And(r.WideSpread).
			And(model.Less(r.ClosePosition, 0.5))

		// Bearish-leaning patterns.
		r.BuyingClimax = up.And(r.HighVolume).And(r.WideSpread).
			And(model.Less(r.ClosePosition, 0.9))
		r.Weakness = up.And(r.HighVolume).And(r.NarrowSpread)
		r.NoResult = up.And(r.HighVolume).
			And(model.Greater(r.ClosePosition, 0.4)).
			And(model.Less(r.ClosePosition, 0.6))

		r.VSABullish = countTrue(r.NoDemand, r.NoSupply, r.StoppingVolume, r.SellingClimax)
		r.VSABearish = countTrue(r.BuyingClimax, r.Weakness, r.NoResult)
		if r.VSABullish.Valid && r.VSABearish.Valid {
			r.VSASignal = model.Int(r.VSABullish.Int - r.VSABearish.Int)
		} else {
			r.VSASignal = model.OptInt{}
		}
	}
}

// countTrue sums defined-true flags; the count is undefined if any flag is.
func countTrue(flags ...model.OptBool) model.OptInt {
	n := 0
	for _, f := range flags {
		if !f.Valid {
			return model.OptInt{}
		}
		if f.Bool {
			n++
		}
	}
	return model.Int(n)
}
