package strategy

import (
	"math"
	"testing"

	"IchiVSA/internal/model"
)

// fusionInputs holds the fields Combine reads, for hand-built records.
type fusionInputs struct {
	tkCross      model.OptInt
	priceVsCloud model.OptInt
	priceVsKijun model.OptInt
	tenkan       float64
	kijun        float64
	cloudBullish model.OptBool
	vsaSignal    model.OptInt
}

func combineOne(in fusionInputs) model.Record {
	recs := model.NewRecords([]model.OHLCV{{}})
	r := &recs[0]
	r.TKCross = in.tkCross
	r.PriceVsCloud = in.priceVsCloud
	r.PriceVsKijun = in.priceVsKijun
	r.Tenkan = in.tenkan
	r.Kijun = in.kijun
	r.CloudBullish = in.cloudBullish
	r.VSASignal = in.vsaSignal
	Combine(recs)
	return recs[0]
}

func TestCombine_Classes(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name      string
		in        fusionInputs
		wantClass model.Class
		wantLabel model.Label
	}{
		{
			name: "strong bullish on cross with positive vsa",
			in: fusionInputs{
				tkCross:      model.Int(1),
				priceVsCloud: model.Int(1),
				priceVsKijun: model.Int(1),
				tenkan:       11, kijun: 10,
				cloudBullish: model.Bool(true),
				vsaSignal:    model.Int(1),
			},
			wantClass: model.ClassStrongBullish,
			wantLabel: model.LabelStrongBuy,
		},
		{
			name: "strong bearish on cross with negative vsa",
			in: fusionInputs{
				tkCross:      model.Int(-1),
				priceVsCloud: model.Int(-1),
				priceVsKijun: model.Int(-1),
				tenkan:       9, kijun: 10,
				cloudBullish: model.Bool(false),
				vsaSignal:    model.Int(-1),
			},
			wantClass: model.ClassStrongBearish,
			wantLabel: model.LabelStrongSell,
		},
		{
			name: "moderate bullish above cloud without strong setup",
			in: fusionInputs{
				tkCross:      model.Int(0),
				priceVsCloud: model.Int(1),
				priceVsKijun: model.Int(-1),
				tenkan:       9, kijun: 10,
				cloudBullish: model.Bool(false),
				vsaSignal:    model.Int(1),
			},
			wantClass: model.ClassModerateBullish,
			wantLabel: model.LabelBuy,
		},
		{
			name: "moderate bearish on cross without vsa confirmation",
			in: fusionInputs{
				tkCross:      model.Int(-1),
				priceVsCloud: model.Int(0),
				priceVsKijun: model.Int(1),
				tenkan:       10, kijun: 10,
				cloudBullish: model.Bool(true),
				vsaSignal:    model.Int(0),
			},
			wantClass: model.ClassModerateBearish,
			wantLabel: model.LabelSell,
		},
		{
			name: "neutral when nothing fires",
			in: fusionInputs{
				tkCross:      model.Int(0),
				priceVsCloud: model.Int(0),
				priceVsKijun: model.Int(1),
				tenkan:       9, kijun: 10,
				cloudBullish: model.Bool(true),
				vsaSignal:    model.Int(0),
			},
			wantClass: model.ClassNeutral,
			wantLabel: model.LabelNeutral,
		},
		{
			name: "defined cross and vsa decide despite missing cloud",
			in: fusionInputs{
				tkCross:   model.Int(1),
				tenkan:    nan, kijun: nan,
				vsaSignal: model.Int(1),
			},
			wantClass: model.ClassStrongBullish,
			wantLabel: model.LabelStrongBuy,
		},
	}
	for _, tt := range tests {
		got := combineOne(tt.in)
		if !got.Class.Valid || got.Class.Class != tt.wantClass {
			t.Errorf("%s: class = %+v, want %v", tt.name, got.Class, tt.wantClass)
		}
		if got.Signal != tt.wantLabel {
			t.Errorf("%s: label = %q, want %q", tt.name, got.Signal, tt.wantLabel)
		}
		if !got.Strength.Valid || got.Strength.Int != tt.wantClass.Strength() {
			t.Errorf("%s: strength = %+v, want %d", tt.name, got.Strength, tt.wantClass.Strength())
		}
	}
}

func TestCombine_UndefinedInputs(t *testing.T) {
	nan := math.NaN()

	// Nothing defined at all.
	got := combineOne(fusionInputs{tenkan: nan, kijun: nan})
	if got.Class.Valid {
		t.Errorf("expected undefined class, got %+v", got.Class)
	}
	if got.Signal != model.LabelNone || got.Strength.Valid {
		t.Errorf("undefined class should carry no label or strength: %q %+v", got.Signal, got.Strength)
	}

	// A bullish cross alone cannot decide without the VSA score.
	got = combineOne(fusionInputs{tkCross: model.Int(1), tenkan: nan, kijun: nan})
	if got.Class.Valid {
		t.Errorf("class should stay undefined without a vsa score, got %+v", got.Class)
	}
}

func TestCombine_DefinedInputsAlwaysClassify(t *testing.T) {
	// With every input defined, the class must be defined and exactly one of
	// the four directional predicates may hold.
	for _, tk := range []int{-1, 0, 1} {
		for _, cloud := range []int{-1, 0, 1} {
			for _, kj := range []int{-1, 1} {
				for _, bull := range []bool{true, false} {
					for vsaScore := -2; vsaScore <= 2; vsaScore++ {
						tenkan, kijun := 10.0, 10.0
						if kj > 0 {
							tenkan = 11
						} else {
							kijun = 11
						}
						got := combineOne(fusionInputs{
							tkCross:      model.Int(tk),
							priceVsCloud: model.Int(cloud),
							priceVsKijun: model.Int(kj),
							tenkan:       tenkan, kijun: kijun,
							cloudBullish: model.Bool(bull),
							vsaSignal:    model.Int(vsaScore),
						})
						if !got.Class.Valid {
							t.Fatalf("tk=%d cloud=%d kijun=%d bull=%v vsa=%d: class undefined",
								tk, cloud, kj, bull, vsaScore)
						}
						n := 0
						for _, hit := range []bool{
							got.StrongBullish(), got.StrongBearish(),
							got.ModerateBullish(), got.ModerateBearish(),
						} {
							if hit {
								n++
							}
						}
						if n > 1 {
							t.Fatalf("tk=%d cloud=%d kijun=%d bull=%v vsa=%d: %d classes matched",
								tk, cloud, kj, bull, vsaScore, n)
						}
					}
				}
			}
		}
	}
}
