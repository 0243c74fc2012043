package strategy

import "IchiVSA/internal/model"

// Combine fills the fused classification fields in place. It reads the
// Ichimoku and VSA signal fields and evaluates the confirmation rules with
// three-valued logic, so a bar still inside a warm-up window gets an
// undefined class instead of a fabricated neutral one.
//
// The rule set is mutually exclusive by construction: the moderate rules
// exclude the strong ones, and the bullish and bearish branches require
// opposite signs of the VSA score. At most one class matches per bar.
func Combine(recs []model.Record) {
	for i := range recs {
		r := &recs[i]

		tkBull := is(r.TKCross, 1)
		tkBear := is(r.TKCross, -1)
		aboveCloud := is(r.PriceVsCloud, 1)
		belowCloud := is(r.PriceVsCloud, -1)
		aboveKijun := is(r.PriceVsKijun, 1)
		belowKijun := is(r.PriceVsKijun, -1)
		tenkanAbove := model.Greater(r.Tenkan, r.Kijun)
		tenkanBelow := model.Less(r.Tenkan, r.Kijun)

		vsaPos := cmp(r.VSASignal, func(v int) bool { return v > 0 })
		vsaNeg := cmp(r.VSASignal, func(v int) bool { return v < 0 })
		vsaNonNeg := cmp(r.VSASignal, func(v int) bool { return v >= 0 })
		vsaNonPos := cmp(r.VSASignal, func(v int) bool { return v <= 0 })

		strongBull := tkBull.
			Or(aboveCloud.And(r.CloudBullish)).
			Or(aboveKijun.And(tenkanAbove)).
			And(vsaPos)
		strongBear := tkBear.
			Or(belowCloud.And(r.CloudBullish.Not())).
			Or(belowKijun.And(tenkanBelow)).
			And(vsaNeg)

		moderateBull := strongBull.Not().
			And(aboveCloud.And(vsaPos).Or(tkBull.And(vsaNonNeg)))
		moderateBear := strongBear.Not().
			And(belowCloud.And(vsaNeg).Or(tkBear.And(vsaNonPos)))

		r.Class = classify(strongBull, strongBear, moderateBull, moderateBear)
		if r.Class.Valid {
			r.Strength = model.Int(r.Class.Class.Strength())
			r.Signal = model.LabelForStrength(r.Strength.Int)
		} else {
			r.Strength = model.OptInt{}
			r.Signal = model.LabelNone
		}
	}
}

// classify picks the single matching class, neutral when every rule is
// definitively false, undefined while any rule is still undecidable.
func classify(strongBull, strongBear, moderateBull, moderateBear model.OptBool) model.OptClass {
	switch {
	case strongBull.True():
		return model.OptClass{Class: model.ClassStrongBullish, Valid: true}
	case strongBear.True():
		return model.OptClass{Class: model.ClassStrongBearish, Valid: true}
	case moderateBull.True():
		return model.OptClass{Class: model.ClassModerateBullish, Valid: true}
	case moderateBear.True():
		return model.OptClass{Class: model.ClassModerateBearish, Valid: true}
	}
	for _, b := range []model.OptBool{strongBull, strongBear, moderateBull, moderateBear} {
		if !b.Valid {
			return model.OptClass{}
		}
	}
	return model.OptClass{Class: model.ClassNeutral, Valid: true}
}

// is lifts an OptInt equality test into three-valued logic.
func is(o model.OptInt, v int) model.OptBool {
	if !o.Valid {
		return model.OptBool{}
	}
	return model.Bool(o.Int == v)
}

// cmp lifts an OptInt predicate into three-valued logic.
func cmp(o model.OptInt, pred func(int) bool) model.OptBool {
	if !o.Valid {
		return model.OptBool{}
	}
	return model.Bool(pred(o.Int))
}
