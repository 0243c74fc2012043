package model

import (
	"math"
	"time"
)

// Record is the per-bar derived overlay. Each engine fills its own group of
// fields; later stages read earlier stages' outputs. Real-valued fields use
// NaN as the "not enough history" sentinel, discrete fields use Opt types.
// There is always exactly one Record per input bar, in input order.
type Record struct {
	// Input bar, copied so the overlay is self-contained.
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64

	// Ichimoku lines.
	Tenkan  float64 // (tenkan-period high + low) / 2
	Kijun   float64 // (kijun-period high + low) / 2
	SenkouA float64 // midpoint of tenkan/kijun, displaced forward
	SenkouB float64 // long-period midpoint, displaced forward
	Chikou  float64 // close displaced backward

	// Ichimoku signals.
	TKCross      OptInt  // +1 bullish cross, -1 bearish cross, 0 none
	PriceVsKijun OptInt  // +1 close above kijun, -1 at or below
	CloudTop     float64 // max of defined senkou spans
	CloudBottom  float64 // min of defined senkou spans
	PriceVsCloud OptInt  // +1 above, -1 below, 0 inside
	CloudBullish OptBool // senkou A strictly above senkou B

	// VSA baselines.
	Spread        float64 // high - low
	AvgSpread     float64
	AvgVolume     float64
	HighVolume    OptBool
	LowVolume     OptBool
	NarrowSpread  OptBool
	WideSpread    OptBool
	ClosePosition float64 // (close-low)/(spread+eps), where the bar closed
	UpBar         bool
	DownBar       bool

	// VSA patterns.
	NoDemand       OptBool
	NoSupply       OptBool
	StoppingVolume OptBool
	SellingClimax  OptBool
	BuyingClimax   OptBool
	Weakness       OptBool
	NoResult       OptBool
	VSABullish     OptInt // count of true bullish patterns, 0..4
	VSABearish     OptInt // count of true bearish patterns, 0..3
	VSASignal      OptInt // bullish - bearish

	// Fused classification.
	Class    OptClass
	Strength OptInt // derived from Class, -2..2
	Signal   Label  // derived from Strength, LabelNone while undefined
}

// StrongBullish reports a defined strong-bullish classification.
func (r *Record) StrongBullish() bool {
	return r.Class.Valid && r.Class.Class == ClassStrongBullish
}

// StrongBearish reports a defined strong-bearish classification.
func (r *Record) StrongBearish() bool {
	return r.Class.Valid && r.Class.Class == ClassStrongBearish
}

// ModerateBullish reports a defined moderate-bullish classification.
func (r *Record) ModerateBullish() bool {
	return r.Class.Valid && r.Class.Class == ClassModerateBullish
}

// ModerateBearish reports a defined moderate-bearish classification.
func (r *Record) ModerateBearish() bool {
	return r.Class.Valid && r.Class.Class == ClassModerateBearish
}

// NewRecords builds the derived table skeleton for a series: one record per
// bar, every derived float NaN and every Opt field undefined.
func NewRecords(bars []OHLCV) []Record {
	nan := math.NaN()
	recs := make([]Record, len(bars))
	for i, b := range bars {
		recs[i] = Record{
			Time:   b.Time,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,

			Tenkan:  nan,
			Kijun:   nan,
			SenkouA: nan,
			SenkouB: nan,
			Chikou:  nan,

			CloudTop:    nan,
			CloudBottom: nan,

			Spread:        nan,
			AvgSpread:     nan,
			AvgVolume:     nan,
			ClosePosition: nan,
		}
	}
	return recs
}
