package report

import (
	"fmt"
	"io"
	"strings"

	"CycleSentinel/internal/model"

	"github.com/dustin/go-humanize"
)

// WriteSummary prints a plain-text digest of res for terminals and CI logs.
func WriteSummary(w io.Writer, res *model.AnalysisResult) error {
	var b strings.Builder
	line := strings.Repeat("=", 60)

	fmt.Fprintf(&b, "%s\n%s analysis, data as of %s\n%s\n", line, res.Symbol, res.AsOf.UTC().Format("2006-01-02"), line)
	fmt.Fprintf(&b, "Price:           $%s\n", humanize.CommafWithDigits(res.Price, 2))
	fmt.Fprintf(&b, "Category:        %s\n", res.Category)
	fmt.Fprintf(&b, "Score:           %+.2f (base %+.2f)\n", res.TotalScore, res.BaseScore)
	if c := res.Cycle; c != nil {
		fmt.Fprintf(&b, "Cycle:           %s, %.1f%%\n", c.Phase, c.PositionPct)
	} else {
		fmt.Fprintf(&b, "Cycle:           unavailable\n")
	}
	fmt.Fprintf(&b, "Peak score:      %.0f/100 (%s)\n", res.Peak.Score, res.Peak.Status)
	fmt.Fprintf(&b, "Sell advice:     %s\n", res.Peak.SellRecommendation)
	if p := res.Targets.Peak; p != nil {
		fmt.Fprintf(&b, "Predicted peak:  $%s (%+.1f%%)\n", humanize.CommafWithDigits(p.Price, 2), p.UpsidePct)
	}
	fmt.Fprintf(&b, "Action:          %s\n", res.Action)
	for _, warn := range res.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", warn)
	}
	b.WriteString(line + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
