package notifier

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"IchiVSA/internal/exposure"
	"IchiVSA/internal/model"
)

func fmtPrice(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return humanize.CommafWithDigits(v, 2)
}

func fmtOptInt(o model.OptInt) string {
	if !o.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%+d", o.Int)
}

func fmtOptBool(o model.OptBool) string {
	if !o.Valid {
		return "n/a"
	}
	if o.Bool {
		return "yes"
	}
	return "no"
}

func signalEmoji(label model.Label) string {
	switch label {
	case model.LabelStrongBuy:
		return "🟢🟢"
	case model.LabelBuy:
		return "🟢"
	case model.LabelSell:
		return "🔴"
	case model.LabelStrongSell:
		return "🔴🔴"
	default:
		return "⚪"
	}
}

// FormatLatestReport formats the latest-bar summary into a Telegram message.
func FormatLatestReport(symbol string, sum *model.Summary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>IchiVSA</b> | %s | %s\n\n", symbol, sum.Time.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Close: %s\n", fmtPrice(sum.Close)))

	label := string(sum.Signal)
	if sum.Signal == model.LabelNone {
		label = "Undefined (warming up)"
	}
	b.WriteString(fmt.Sprintf("Signal: %s %s (strength %s)\n\n", signalEmoji(sum.Signal), label, fmtOptInt(sum.Strength)))

	b.WriteString("☁️ <b>Ichimoku:</b>\n")
	b.WriteString(fmt.Sprintf("  Tenkan: %s | Kijun: %s\n", fmtPrice(sum.Ichimoku.Tenkan), fmtPrice(sum.Ichimoku.Kijun)))
	b.WriteString(fmt.Sprintf("  TK cross: %s | vs cloud: %s | cloud bullish: %s\n\n",
		fmtOptInt(sum.Ichimoku.TKCross), fmtOptInt(sum.Ichimoku.PriceVsCloud), fmtOptBool(sum.Ichimoku.CloudBullish)))

	b.WriteString("📦 <b>VSA:</b>\n")
	b.WriteString(fmt.Sprintf("  net %s (bullish %s, bearish %s)\n",
		fmtOptInt(sum.VSA.Signal), fmtOptInt(sum.VSA.Bullish), fmtOptInt(sum.VSA.Bearish)))

	return b.String()
}

// FormatExposureStatus formats the current exposure state for display.
func FormatExposureStatus(symbol string, st exposure.State) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🎯 <b>Exposure</b> | %s\n\n", symbol))
	b.WriteString(fmt.Sprintf("Target: %.0f%%\n", st.Target*100))
	if st.LastSignal != "" {
		b.WriteString(fmt.Sprintf("Last signal: %s\n", st.LastSignal))
	}
	if st.BullishStreak > 0 {
		b.WriteString(fmt.Sprintf("Bullish streak: %d\n", st.BullishStreak))
	}
	if st.BearishStreak > 0 {
		b.WriteString(fmt.Sprintf("Bearish streak: %d\n", st.BearishStreak))
	}
	b.WriteString(fmt.Sprintf("Updated: %s\n", st.UpdatedAt.Format("2006-01-02 15:04")))
	return b.String()
}

// FormatDigest summarizes signal distribution over the trailing lastN bars
// plus the patterns firing on the most recent one.
func FormatDigest(symbol string, recs []model.Record, lastN int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗞 <b>IchiVSA digest</b> | %s | %s\n\n", symbol, time.Now().Format("2006-01-02")))

	start := len(recs) - lastN
	if start < 0 {
		start = 0
	}
	counts := map[model.Label]int{}
	defined := 0
	for i := start; i < len(recs); i++ {
		if recs[i].Signal == model.LabelNone {
			continue
		}
		counts[recs[i].Signal]++
		defined++
	}
	b.WriteString(fmt.Sprintf("Last %s bars with defined signals:\n", humanize.Comma(int64(defined))))
	for _, label := range []model.Label{
		model.LabelStrongBuy, model.LabelBuy, model.LabelNeutral, model.LabelSell, model.LabelStrongSell,
	} {
		if counts[label] > 0 {
			b.WriteString(fmt.Sprintf("  %s %s: %d\n", signalEmoji(label), label, counts[label]))
		}
	}

	if len(recs) > 0 {
		last := &recs[len(recs)-1]
		var fired []string
		for _, p := range []struct {
			name string
			flag model.OptBool
		}{
			{"no demand", last.NoDemand},
			{"no supply", last.NoSupply},
			{"stopping volume", last.StoppingVolume},
			{"selling climax", last.SellingClimax},
			{"buying climax", last.BuyingClimax},
			{"weakness", last.Weakness},
			{"no result", last.NoResult},
		} {
			if p.flag.True() {
				fired = append(fired, p.name)
			}
		}
		if len(fired) > 0 {
			b.WriteString(fmt.Sprintf("\nPatterns on latest bar: %s\n", strings.Join(fired, ", ")))
		}
	}

	return b.String()
}
