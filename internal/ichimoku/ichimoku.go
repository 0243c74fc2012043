// Package ichimoku computes the five Ichimoku Kinko Hyo lines and their
// positional signals over a bar series.
package ichimoku

import (
	"errors"
	"fmt"
	"math"

	"IchiVSA/internal/calculator"
	"IchiVSA/internal/model"
)

// ErrInvalidConfig reports a non-positive period at construction.
var ErrInvalidConfig = errors.New("invalid ichimoku configuration")

// Default periods, the classic 9/26/52/26 setup.
const (
	DefaultTenkanPeriod  = 9
	DefaultKijunPeriod   = 26
	DefaultSenkouBPeriod = 52
	DefaultDisplacement  = 26
)

// Ichimoku holds the configured look-back periods.
type Ichimoku struct {
	TenkanPeriod  int
	KijunPeriod   int
	SenkouBPeriod int
	Displacement  int
}

// New validates the periods and returns a configured engine.
func New(tenkan, kijun, senkouB, displacement int) (*Ichimoku, error) {
	for _, p := range []struct {
		name  string
		value int
	}{
		{"tenkan period", tenkan},
		{"kijun period", kijun},
		{"senkou B period", senkouB},
		{"displacement", displacement},
	} {
		if p.value <= 0 {
			return nil, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, p.name, p.value)
		}
	}
	return &Ichimoku{
		TenkanPeriod:  tenkan,
		KijunPeriod:   kijun,
		SenkouBPeriod: senkouB,
		Displacement:  displacement,
	}, nil
}

// Defaults returns an engine with the classic periods.
func Defaults() *Ichimoku {
	ix, _ := New(DefaultTenkanPeriod, DefaultKijunPeriod, DefaultSenkouBPeriod, DefaultDisplacement)
	return ix
}

// Calculate fills the five Ichimoku line fields in place. Positions without
// enough history hold NaN; the record count never changes.
func (ix *Ichimoku) Calculate(recs []model.Record) {
	highs := make([]float64, len(recs))
	lows := make([]float64, len(recs))
	closes := make([]float64, len(recs))
	for i := range recs {
		highs[i] = recs[i].High
		lows[i] = recs[i].Low
		closes[i] = recs[i].Close
	}

	tenkan := calculator.Midpoint(highs, lows, ix.TenkanPeriod)
	kijun := calculator.Midpoint(highs, lows, ix.KijunPeriod)

	rawA := make([]float64, len(recs))
	for i := range rawA {
		rawA[i] = (tenkan[i] + kijun[i]) / 2
	}
	senkouA := calculator.ShiftForward(rawA, ix.Displacement)
	senkouB := calculator.ShiftForward(calculator.Midpoint(highs, lows, ix.SenkouBPeriod), ix.Displacement)
	chikou := calculator.ShiftBackward(closes, ix.Displacement)

	for i := range recs {
		recs[i].Tenkan = tenkan[i]
		recs[i].Kijun = kijun[i]
		recs[i].SenkouA = senkouA[i]
		recs[i].SenkouB = senkouB[i]
		recs[i].Chikou = chikou[i]
	}
}

// Signals fills the cross, price-position and cloud fields in place. The
// line fields are recomputed first, so calling Signals on a fresh record
// table works and repeated calls yield identical output.
func (ix *Ichimoku) Signals(recs []model.Record) {
	ix.Calculate(recs)

	for i := range recs {
		r := &recs[i]

		r.TKCross = tkCross(recs, i)

		if math.IsNaN(r.Kijun) {
			r.PriceVsKijun = model.OptInt{}
		} else if r.Close > r.Kijun {
			r.PriceVsKijun = model.Int(1)
		} else {
			// An exact tie counts as below.
			r.PriceVsKijun = model.Int(-1)
		}

		r.CloudTop, r.CloudBottom = cloudBounds(r.SenkouA, r.SenkouB)

		switch {
		case math.IsNaN(r.CloudTop):
			r.PriceVsCloud = model.OptInt{}
		case r.Close > r.CloudTop:
			r.PriceVsCloud = model.Int(1)
		case r.Close < r.CloudBottom:
			r.PriceVsCloud = model.Int(-1)
		default:
			r.PriceVsCloud = model.Int(0)
		}

		if math.IsNaN(r.SenkouA) || math.IsNaN(r.SenkouB) {
			r.CloudBullish = model.OptBool{}
		} else {
			r.CloudBullish = model.Bool(r.SenkouA > r.SenkouB)
		}
	}
}

// tkCross detects the tenkan/kijun cross between bar i-1 and bar i:
// +1 when tenkan moves from at-or-below to above, -1 on the mirror move.
// Undefined until both lines are defined on two consecutive bars.
func tkCross(recs []model.Record, i int) model.OptInt {
	if i == 0 {
		return model.OptInt{}
	}
	cur, prev := &recs[i], &recs[i-1]
	if math.IsNaN(cur.Tenkan) || math.IsNaN(cur.Kijun) ||
		math.IsNaN(prev.Tenkan) || math.IsNaN(prev.Kijun) {
		return model.OptInt{}
	}
	switch {
	case cur.Tenkan > cur.Kijun && prev.Tenkan <= prev.Kijun:
		return model.Int(1)
	case cur.Tenkan < cur.Kijun && prev.Tenkan >= prev.Kijun:
		return model.Int(-1)
	default:
		return model.Int(0)
	}
}

// cloudBounds returns the top and bottom of the cloud at one bar. A span
// that is still in its warm-up window is skipped; the bounds are undefined
// only when both spans are.
func cloudBounds(a, b float64) (top, bottom float64) {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return math.NaN(), math.NaN()
	case math.IsNaN(a):
		return b, b
	case math.IsNaN(b):
		return a, a
	default:
		return math.Max(a, b), math.Min(a, b)
	}
}
