package model

import (
	"errors"
	"time"
)

// ErrEmptySeries is returned when an operation that needs at least one bar
// is given none.
var ErrEmptySeries = errors.New("empty series")

// Class is the fused per-bar classification. The rule set evaluates to at
// most one class per bar, so the integer strength is simply the class value.
type Class int8

const (
	ClassStrongBearish   Class = -2
	ClassModerateBearish Class = -1
	ClassNeutral         Class = 0
	ClassModerateBullish Class = 1
	ClassStrongBullish   Class = 2
)

// Strength returns the integer signal strength for the class.
func (c Class) Strength() int { return int(c) }

// OptClass is a Class that may be undefined for lack of history.
type OptClass struct {
	Class Class
	Valid bool
}

// Label is the ordinal signal label shown to users.
type Label string

const (
	LabelNone       Label = ""
	LabelStrongSell Label = "Strong Sell"
	LabelSell       Label = "Sell"
	LabelNeutral    Label = "Neutral"
	LabelBuy        Label = "Buy"
	LabelStrongBuy  Label = "Strong Buy"
)

// LabelForStrength buckets an integer strength into its ordinal label:
// (-inf,-1.5] Strong Sell, (-1.5,-0.5] Sell, (-0.5,0.5] Neutral,
// (0.5,1.5] Buy, (1.5,inf) Strong Buy.
func LabelForStrength(strength int) Label {
	s := float64(strength)
	switch {
	case s <= -1.5:
		return LabelStrongSell
	case s <= -0.5:
		return LabelSell
	case s <= 0.5:
		return LabelNeutral
	case s <= 1.5:
		return LabelBuy
	default:
		return LabelStrongBuy
	}
}

// IchimokuSummary holds the trend-side fields of a Summary.
type IchimokuSummary struct {
	Tenkan       float64
	Kijun        float64
	TKCross      OptInt
	PriceVsCloud OptInt
	CloudBullish OptBool
}

// VSASummary holds the volume-spread fields of a Summary.
type VSASummary struct {
	Signal  OptInt
	Bullish OptInt
	Bearish OptInt
}

// Summary describes the most recent bar after a full pipeline run.
type Summary struct {
	Time     time.Time
	Close    float64
	Signal   Label
	Strength OptInt
	Ichimoku IchimokuSummary
	VSA      VSASummary
}
