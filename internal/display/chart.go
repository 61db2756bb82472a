package display

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/example/coffee-sales/pkg/query"
)

const barRune = "█"

// BarChart draws one horizontal bar per group, scaled so the largest value spans width cells
func BarChart(w io.Writer, res query.AggregateResult, width int) error {
	if width <= 0 {
		width = 40
	}

	max := decimal.Zero
	for _, g := range res.Groups {
		if g.Value.GreaterThan(max) {
			max = g.Value
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, g := range res.Groups {
		n := 0
		if max.IsPositive() {
			n = int(g.Value.Div(max).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
		}
		fmt.Fprintf(tw, "%s\t%s %s\n", g.Key, strings.Repeat(barRune, n), FormatValue(res.Measure, g.Value))
	}
	return tw.Flush()
}
