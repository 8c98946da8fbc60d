package notifier

import (
	"fmt"
	"html"
	"strings"

	"CycleSentinel/internal/model"

	"github.com/dustin/go-humanize"
)

var categoryIcon = map[model.Category]string{
	model.CategoryStrongBuy:   "🟢🟢",
	model.CategoryBuy:         "🟢",
	model.CategoryWeakBuy:     "🟩",
	model.CategoryNeutralBuy:  "🟨",
	model.CategoryNeutral:     "⚪",
	model.CategoryNeutralSell: "🟧",
	model.CategoryWeakSell:    "🟥",
	model.CategorySell:        "🔴",
	model.CategoryStrongSell:  "🔴🔴",
}

// USD renders a dollar price with thousands separators.
func USD(p float64) string {
	return "$" + humanize.CommafWithDigits(p, 2)
}

// FormatAnalysis formats an analysis result into a Telegram HTML message.
func FormatAnalysis(res *model.AnalysisResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>CycleSentinel %s</b> | %s\n\n", html.EscapeString(res.Symbol), res.AsOf.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Price: %s\n", USD(res.Price)))
	b.WriteString(fmt.Sprintf("Category: %s <b>%s</b> (total %+.2f, base %+.2f)\n",
		categoryIcon[res.Category], res.Category, res.TotalScore, res.BaseScore))
	b.WriteString(fmt.Sprintf("Recommendation: %s\n", html.EscapeString(res.Recommendation)))
	b.WriteString(fmt.Sprintf("Action: %s\n\n", html.EscapeString(res.Action)))

	if c := res.Cycle; c != nil {
		b.WriteString(fmt.Sprintf("🔄 <b>Halving cycle:</b> %s, %.1f%% (day %d, %+.1f)\n",
			html.EscapeString(c.Phase), c.PositionPct, c.DaysSinceHalving, c.PhaseScore))
	} else {
		b.WriteString("🔄 <b>Halving cycle:</b> unavailable\n")
	}
	b.WriteString(fmt.Sprintf("🔥 <b>Peak score:</b> %.0f/100 %s\n   %s\n\n",
		res.Peak.Score, html.EscapeString(res.Peak.Status), html.EscapeString(res.Peak.SellRecommendation)))

	b.WriteString("📈 <b>Signals:</b>\n")
	for _, s := range res.Signals {
		b.WriteString(fmt.Sprintf("  %s (%s): %s %+.1f ×%.1f = %+.2f\n",
			html.EscapeString(s.Name), html.EscapeString(s.Value), html.EscapeString(s.Label),
			s.Score, s.Weight, s.Weighted))
	}
	b.WriteString("\n")

	writeTargets(&b, res.Targets)

	if len(res.Warnings) > 0 {
		b.WriteString("\n⚠️ <b>Warnings:</b>\n")
		for _, w := range res.Warnings {
			b.WriteString("  " + html.EscapeString(w) + "\n")
		}
	}
	return b.String()
}

func writeTargets(b *strings.Builder, t model.PriceTargets) {
	b.WriteString("🎯 <b>Levels:</b>\n")
	switch t.Branch {
	case model.BranchStrongBuy, model.BranchBuy:
		b.WriteString(fmt.Sprintf("  Entry: %s ~ %s\n", USD(t.EntryLow), USD(t.EntryHigh)))
		for _, l := range t.Targets {
			b.WriteString(fmt.Sprintf("  %s: %s (%+.1f%%)\n", html.EscapeString(l.Label), USD(l.Price), l.ChangePct))
		}
		b.WriteString(fmt.Sprintf("  Stop loss: %s\n", USD(t.StopLoss)))
	case model.BranchStrongSell, model.BranchWeakSell:
		for _, l := range t.Exits {
			b.WriteString(fmt.Sprintf("  Sell %.0f%% %s: %s (%+.1f%%)\n",
				l.Fraction*100, html.EscapeString(l.Label), USD(l.Price), l.ChangePct))
		}
		for _, l := range t.Supports {
			b.WriteString(fmt.Sprintf("  %s: %s (%+.1f%%)\n", html.EscapeString(l.Label), USD(l.Price), l.ChangePct))
		}
		if t.ReentryPrice > 0 {
			b.WriteString(fmt.Sprintf("  Re-entry: %s\n", USD(t.ReentryPrice)))
		}
		if p := t.Peak; p != nil {
			b.WriteString(fmt.Sprintf("  Predicted peak: %s (%+.1f%%, %s confidence)\n", USD(p.Price), p.UpsidePct, p.Confidence))
		}
	default:
		b.WriteString(fmt.Sprintf("  Range: %s ~ %s\n", USD(t.RangeLow), USD(t.RangeHigh)))
		b.WriteString(fmt.Sprintf("  Breakout: %s | Breakdown: %s\n", USD(t.BreakoutLevel), USD(t.BreakdownLevel)))
		b.WriteString(fmt.Sprintf("  Key support: %s\n", USD(t.KeySupport)))
	}
}

// FormatLatest wraps the stored result with its age.
func FormatLatest(res *model.AnalysisResult) string {
	if res == nil {
		return "No analysis has been run yet. Send /analysis to run one."
	}
	return fmt.Sprintf("🕒 Last run %s\n\n%s", humanize.Time(res.EvaluatedAt), FormatAnalysis(res))
}

// FormatHelp lists the supported commands.
func FormatHelp() string {
	return "<b>CycleSentinel commands</b>\n" +
		"/analysis - fetch data and run a fresh analysis\n" +
		"/latest - show the most recent analysis\n" +
		"/help - show this message"
}
