// Package strategy fuses the Ichimoku and VSA engines into the combined
// per-bar classification and exposes the whole-series analysis pipeline.
package strategy

import (
	"fmt"

	"IchiVSA/internal/ichimoku"
	"IchiVSA/internal/model"
	"IchiVSA/internal/vsa"
)

// Analyzer runs both indicator engines and the fusion stage over a series.
// It keeps no state between calls; every call recomputes the full table.
type Analyzer struct {
	Ichimoku *ichimoku.Ichimoku
	VSA      *vsa.VSA
}

// New returns an Analyzer over the given engines.
func New(ix *ichimoku.Ichimoku, v *vsa.VSA) *Analyzer {
	return &Analyzer{Ichimoku: ix, VSA: v}
}

// Defaults returns an Analyzer with both engines on their classic settings.
func Defaults() *Analyzer {
	return New(ichimoku.Defaults(), vsa.Defaults())
}

// Analyze validates the series and computes the full derived table: both
// engines' lines and signals, then the fused classification. The result has
// exactly one record per input bar, in input order.
func (a *Analyzer) Analyze(bars []model.OHLCV) ([]model.Record, error) {
	if err := model.ValidateSeries(bars); err != nil {
		return nil, fmt.Errorf("validate series: %w", err)
	}
	recs := model.NewRecords(bars)
	a.Ichimoku.Signals(recs)
	a.VSA.Signals(recs)
	Combine(recs)
	return recs, nil
}

// Latest runs the full pipeline and summarizes the most recent bar.
// Returns model.ErrEmptySeries when given no bars; a short series is fine
// and yields a summary full of undefined fields.
func (a *Analyzer) Latest(bars []model.OHLCV) (*model.Summary, error) {
	if len(bars) == 0 {
		return nil, model.ErrEmptySeries
	}
	recs, err := a.Analyze(bars)
	if err != nil {
		return nil, err
	}
	last := &recs[len(recs)-1]
	return &model.Summary{
		Time:     last.Time,
		Close:    last.Close,
		Signal:   last.Signal,
		Strength: last.Strength,
		Ichimoku: model.IchimokuSummary{
			Tenkan:       last.Tenkan,
			Kijun:        last.Kijun,
			TKCross:      last.TKCross,
			PriceVsCloud: last.PriceVsCloud,
			CloudBullish: last.CloudBullish,
		},
		VSA: model.VSASummary{
			Signal:  last.VSASignal,
			Bullish: last.VSABullish,
			Bearish: last.VSABearish,
		},
	}, nil
}
