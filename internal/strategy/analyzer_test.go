package strategy

import (
	"errors"
	"math"
	"testing"
	"time"

	"IchiVSA/internal/model"
)

// trendBars builds a deterministic series with a drift, a wobble, and uneven
// volume so both engines see every classification at least once.
func trendBars(n int) []model.OHLCV {
	t0 := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, n)
	for i := range bars {
		f := float64(i)
		p := 100 + 0.4*f + 6*math.Sin(f/7)
		spread := 1.5 + math.Abs(math.Sin(f/3))
		vol := 1000 + 900*math.Sin(f/5)
		bars[i] = model.OHLCV{
			Time:   t0.AddDate(0, 0, i),
			Open:   p - 0.3*math.Sin(f/2)*spread,
			High:   p + spread/2,
			Low:    p - spread/2,
			Close:  p + 0.3*math.Cos(f/2)*spread,
			Volume: vol,
		}
	}
	for i := range bars {
		b := &bars[i]
		if b.Open > b.High {
			b.High = b.Open
		}
		if b.Close > b.High {
			b.High = b.Close
		}
		if b.Open < b.Low {
			b.Low = b.Open
		}
		if b.Close < b.Low {
			b.Low = b.Close
		}
	}
	return bars
}

func TestAnalyze_TableShape(t *testing.T) {
	a := Defaults()
	bars := trendBars(200)
	recs, err := a.Analyze(bars)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != len(bars) {
		t.Fatalf("expected %d records, got %d", len(bars), len(recs))
	}
	for i, r := range recs {
		if !r.Time.Equal(bars[i].Time) || r.Close != bars[i].Close {
			t.Errorf("record %d: input bar not carried through", i)
		}
		if r.Strength.Valid {
			if r.Strength.Int < -2 || r.Strength.Int > 2 {
				t.Errorf("record %d: strength %d out of range", i, r.Strength.Int)
			}
			if r.Signal != model.LabelForStrength(r.Strength.Int) {
				t.Errorf("record %d: label %q does not match strength %d", i, r.Signal, r.Strength.Int)
			}
		} else if r.Signal != model.LabelNone {
			t.Errorf("record %d: undefined strength but label %q", i, r.Signal)
		}
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := Defaults()
	bars := trendBars(150)

	first, err := a.Analyze(bars)
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Analyze(bars)
	if err != nil {
		t.Fatal(err)
	}

	for i := range first {
		x, y := first[i], second[i]
		if x.Class != y.Class || x.Signal != y.Signal || x.TKCross != y.TKCross ||
			x.VSASignal != y.VSASignal || x.PriceVsCloud != y.PriceVsCloud {
			t.Fatalf("record %d differs between runs", i)
		}
		if !sameFloat(x.Tenkan, y.Tenkan) || !sameFloat(x.SenkouB, y.SenkouB) ||
			!sameFloat(x.AvgVolume, y.AvgVolume) {
			t.Fatalf("record %d: float fields differ between runs", i)
		}
	}
}

// sameFloat treats two NaNs as equal.
func sameFloat(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}

func TestAnalyze_RejectsMalformedSeries(t *testing.T) {
	a := Defaults()
	bars := trendBars(10)
	bars[5].Time = bars[2].Time
	if _, err := a.Analyze(bars); err == nil {
		t.Error("expected error for unordered timestamps")
	}
}

func TestLatest_EmptySeries(t *testing.T) {
	if _, err := Defaults().Latest(nil); !errors.Is(err, model.ErrEmptySeries) {
		t.Errorf("expected ErrEmptySeries, got %v", err)
	}
}

func TestLatest_ShortSeries(t *testing.T) {
	// One bar is far inside every warm-up window: no error, but nothing is
	// decided yet.
	sum, err := Defaults().Latest(trendBars(1))
	if err != nil {
		t.Fatal(err)
	}
	if sum.Signal != model.LabelNone || sum.Strength.Valid {
		t.Errorf("expected undefined summary, got signal %q strength %+v", sum.Signal, sum.Strength)
	}
	if sum.Ichimoku.TKCross.Valid || sum.VSA.Signal.Valid {
		t.Errorf("component signals should be undefined on one bar")
	}
}

func TestLatest_LongSeries(t *testing.T) {
	bars := trendBars(250)
	sum, err := Defaults().Latest(bars)
	if err != nil {
		t.Fatal(err)
	}
	last := bars[len(bars)-1]
	if !sum.Time.Equal(last.Time) || sum.Close != last.Close {
		t.Errorf("summary should describe the final bar")
	}
	// 250 bars clear every default warm-up window except the chikou span,
	// so the fused signal must be decided.
	if !sum.Strength.Valid {
		t.Error("expected a defined strength on a long series")
	}
	if sum.Signal == model.LabelNone {
		t.Error("expected a defined label on a long series")
	}
	if math.IsNaN(sum.Ichimoku.Tenkan) || math.IsNaN(sum.Ichimoku.Kijun) {
		t.Error("ichimoku lines should be defined on a long series")
	}
	if !sum.VSA.Signal.Valid {
		t.Error("vsa signal should be defined on a long series")
	}
}
