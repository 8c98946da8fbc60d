package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"CycleSentinel/internal/model"

	"github.com/dustin/go-humanize"
)

//go:embed templates/report.html.tmpl
var reportTemplate string

var funcs = template.FuncMap{
	"usd": func(p float64) string {
		return "$" + humanize.CommafWithDigits(p, 2)
	},
	"signed": func(v float64) string {
		return fmt.Sprintf("%+.2f", v)
	},
	"pct": func(v float64) string {
		return fmt.Sprintf("%+.1f%%", v)
	},
	"share": func(v float64) string {
		return fmt.Sprintf("%.0f%%", v*100)
	},
	"date": func(t time.Time) string {
		return t.UTC().Format("2006-01-02")
	},
	"stamp": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 15:04 UTC")
	},
	"scoreClass":    scoreClass,
	"categoryClass": categoryClass,
	"isBuyBranch": func(b model.TargetBranch) bool {
		return b == model.BranchStrongBuy || b == model.BranchBuy
	},
	"isSellBranch": func(b model.TargetBranch) bool {
		return b == model.BranchStrongSell || b == model.BranchWeakSell
	},
}

var tmpl = template.Must(template.New("report").Funcs(funcs).Parse(reportTemplate))

// scoreClass colours an indicator card by score sign and magnitude.
func scoreClass(score float64) string {
	switch {
	case score >= 1.5:
		return "strong-bull"
	case score > 0:
		return "bull"
	case score <= -1.5:
		return "strong-bear"
	case score < 0:
		return "bear"
	default:
		return "flat"
	}
}

func categoryClass(c model.Category) string {
	switch {
	case c.IsBuy():
		return "buy"
	case c.IsSell():
		return "sell"
	default:
		return "neutral"
	}
}

type view struct {
	*model.AnalysisResult
	Title       string
	GeneratedAt time.Time
	PeakWidth   float64
}

// Render writes the HTML report for res.
func Render(w io.Writer, res *model.AnalysisResult, generatedAt time.Time) error {
	if res == nil {
		return fmt.Errorf("render report: %w", model.ErrEmptyInput)
	}
	v := view{
		AnalysisResult: res,
		Title:          fmt.Sprintf("%s Cycle Analysis %s", res.Symbol, res.AsOf.UTC().Format("2006-01-02")),
		GeneratedAt:    generatedAt,
		PeakWidth:      math.Max(0, math.Min(100, res.Peak.Score)),
	}
	return tmpl.Execute(w, v)
}

// WriteFile renders the report into path, creating parent directories.
func WriteFile(path string, res *model.AnalysisResult, generatedAt time.Time) error {
	var buf bytes.Buffer
	if err := Render(&buf, res, generatedAt); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
