package report

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/cycle-spend/internal/cycle"
	"fjacquet/cycle-spend/internal/models"
	"fjacquet/cycle-spend/internal/trend"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

const (
	ruleWidth = 70
	barWidth  = 40
)

// NoDataMessage is printed instead of the text report when there is no
// spending to analyze.
const NoDataMessage = "No spending data found."

type palette struct {
	heading *color.Color
	good    *color.Color
	warn    *color.Color
	bad     *color.Color
	muted   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		heading: color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		bad:     color.New(color.FgRed),
		muted:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.heading, p.good, p.warn, p.bad, p.muted} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// textWriter accumulates the text report.
type textWriter struct {
	b strings.Builder
	p palette
}

func (t *textWriter) printf(format string, args ...interface{}) {
	fmt.Fprintf(&t.b, format, args...)
}

func (t *textWriter) section(title string) {
	rule := strings.Repeat("=", ruleWidth)
	t.printf("\n%s\n", rule)
	t.printf("%s\n", t.p.heading.Sprint(centered(title, ruleWidth)))
	t.printf("%s\n", rule)
}

func centered(s string, width int) string {
	pad := (width - len([]rune(s))) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (g *Generator) generateText(w io.Writer, totals models.CycleTotals, analysis trend.Report) error {
	t := &textWriter{p: newPalette(g.opts.Color)}

	if analysis.Empty() || len(totals) == 0 {
		t.printf("%s\n", t.p.muted.Sprint(NoDataMessage))
		_, err := io.WriteString(w, t.b.String())
		return err
	}

	g.writeCycles(t, totals, analysis)
	writeBars(t, analysis)
	writeChanges(t, analysis)
	writeHalves(t, analysis)
	writeCategoryTrends(t, analysis)
	writeInsights(t, analysis)

	_, err := io.WriteString(w, t.b.String())
	return err
}

func (g *Generator) cycleTitle() string {
	if g.opts.StartDay == cycle.MinStartDay {
		return "SPENDING BY CALENDAR MONTH"
	}
	return fmt.Sprintf("SPENDING BY BILLING CYCLE (STARTS DAY %d)", g.opts.StartDay)
}

func (g *Generator) writeCycles(t *textWriter, totals models.CycleTotals, analysis trend.Report) {
	t.section(g.cycleTitle())

	doc := g.BuildDocument(totals, analysis)
	for _, c := range doc.Cycles {
		t.printf("\n%-9s %s to %s %24s\n", t.p.heading.Sprint(c.Cycle.String()), c.From, c.To, money(c.Total))
		for _, ca := range c.Categories {
			t.printf("  %-30s %35s\n", ca.Category, money(ca.Amount))
		}
	}
	t.printf("\n%-32s %35s\n", "Grand total", money(doc.GrandTotal))
}

func writeBars(t *textWriter, analysis trend.Report) {
	t.section("SPENDING TREND")

	peak := decimal.Zero
	for _, c := range analysis.Changes {
		if c.Total.GreaterThan(peak) {
			peak = c.Total
		}
	}

	for _, c := range analysis.Changes {
		n := 0
		if peak.IsPositive() {
			n = int(c.Total.Mul(decimal.NewFromInt(barWidth)).Div(peak).IntPart())
		}
		t.printf("%s %12s |%s\n", c.Key, money(c.Total), strings.Repeat("█", n))
	}
}

func arrow(delta decimal.Decimal) string {
	switch delta.Sign() {
	case 1:
		return "↑"
	case -1:
		return "↓"
	default:
		return "→"
	}
}

func writeChanges(t *textWriter, analysis trend.Report) {
	t.section("CYCLE-OVER-CYCLE CHANGE")

	t.printf("\n%-10s %14s %16s %10s\n", "Cycle", "Spending", "Change", "% Change")
	t.printf("%s\n", strings.Repeat("-", 53))
	for _, c := range analysis.Changes {
		if !c.HasPrior {
			t.printf("%-10s %14s %16s %10s\n", c.Key, money(c.Total), "-", "-")
			continue
		}
		change := fmt.Sprintf("%s %s", arrow(c.Delta), money(c.Delta.Abs()))
		pct := c.Percent.StringFixed(1) + "%"
		if c.Percent.IsPositive() {
			pct = "+" + pct
		}
		t.printf("%-10s %14s %16s %10s\n", c.Key, money(c.Total), change, pct)
	}
}

func keyRange(keys []cycle.Key) string {
	if len(keys) == 0 {
		return "-"
	}
	return fmt.Sprintf("%s to %s", keys[0], keys[len(keys)-1])
}

func writeHalves(t *textWriter, analysis trend.Report) {
	h := analysis.Halves
	t.section("TREND ANALYSIS")

	t.printf("\nFirst half  (%s): %12s per cycle\n", keyRange(h.First), money(h.FirstAverage))
	t.printf("Second half (%s): %12s per cycle\n\n", keyRange(h.Second), money(h.SecondAverage))

	switch h.Direction {
	case trend.DirectionDecreased:
		t.printf("%s\n", t.p.good.Sprintf("Spending DECREASED by %s%% in second half", h.Percent.StringFixed(1)))
	case trend.DirectionIncreased:
		t.printf("%s\n", t.p.warn.Sprintf("Spending INCREASED by %s%% in second half", h.Percent.StringFixed(1)))
	default:
		t.printf("%s\n", t.p.muted.Sprint("Not enough data to compare halves"))
	}
}

func categoryLabel(ct trend.CategoryTrend, p palette) string {
	pct := ct.Percent.StringFixed(0)
	switch ct.Direction {
	case trend.CategoryUp:
		return p.bad.Sprintf("↑ +%s%%", pct)
	case trend.CategoryDown:
		return p.good.Sprintf("↓ %s%%", pct)
	case trend.CategoryFlat:
		if !ct.Percent.IsNegative() {
			pct = "+" + pct
		}
		return fmt.Sprintf("→ %s%%", pct)
	default:
		return "-"
	}
}

func writeCategoryTrends(t *textWriter, analysis trend.Report) {
	t.section("CATEGORY TREND (FIRST VS SECOND HALF)")

	t.printf("\n%-24s %14s %14s   %s\n", "Category", "1st half avg", "2nd half avg", "Trend")
	t.printf("%s\n", strings.Repeat("-", 65))
	for _, ct := range analysis.Categories {
		t.printf("%-24s %14s %14s   %s\n", ct.Category, money(ct.FirstAverage), money(ct.SecondAverage), categoryLabel(ct, t.p))
	}
}

func writeInsights(t *textWriter, analysis trend.Report) {
	t.section("KEY INSIGHTS")

	t.printf("\n%s\n", t.p.bad.Sprint("Highest spending cycles:"))
	for _, e := range analysis.Highest {
		t.printf("   %s: %s\n", e.Key, money(e.Total))
	}
	t.printf("\n%s\n", t.p.good.Sprint("Lowest spending cycles:"))
	for _, e := range analysis.Lowest {
		t.printf("   %s: %s\n", e.Key, money(e.Total))
	}

	v := analysis.Volatility
	t.printf("\nSpending consistency:\n")
	if v.Level == trend.VolatilityInsufficient {
		t.printf("   %s\n", t.p.muted.Sprint("Not enough cycles to measure volatility"))
		return
	}
	t.printf("   Average per cycle: %.2f\n", v.Mean)
	t.printf("   Std deviation:     %.2f\n", v.StdDev)
	t.printf("   Volatility (CV):   %.1f%%\n", v.CV)

	switch v.Level {
	case trend.VolatilityHigh:
		t.printf("   %s\n", t.p.bad.Sprint("High volatility - spending varies significantly between cycles"))
	case trend.VolatilityModerate:
		t.printf("   %s\n", t.p.warn.Sprint("Moderate volatility - some variation between cycles"))
	default:
		t.printf("   %s\n", t.p.good.Sprint("Low volatility - consistent spending pattern"))
	}
}
