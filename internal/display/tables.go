package display

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/example/coffee-sales/pkg/query"
	"github.com/example/coffee-sales/pkg/sale"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// RenderMetrics writes the quick overview block
func RenderMetrics(w io.Writer, m query.Metrics) error {
	avg := m.AvgSale.String()
	if m.AvgSale.Valid {
		avg = FormatMoney(m.AvgSale.Value)
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "Quick Overview")
	fmt.Fprintf(tw, "Cups Sold:\t%s\n", FormatInt(m.Count))
	fmt.Fprintf(tw, "Revenue:\t%s\n", FormatMoney(m.TotalRevenue))
	fmt.Fprintf(tw, "Avg Sale:\t%s\n", avg)
	fmt.Fprintf(tw, "Percent Contribution to Sales:\t%s\n", m.Contribution)
	if err := m.Warning(); err != nil {
		fmt.Fprintf(tw, "Warning:\t%s\n", err)
	}
	return tw.Flush()
}

// RenderRecords writes the records as a table; limit <= 0 writes all of them
func RenderRecords(w io.Writer, records []sale.Record, limit int) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "date\tcoffee_name\tTime_of_Day\tWeekday\tMonth_name\tcash_type\tcard\tmoney")

	shown := records
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, r := range shown {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Date.Format("2006-01-02"),
			r.CoffeeName,
			r.TimeOfDay,
			r.Weekday,
			r.MonthName,
			r.CashType,
			r.Card,
			FormatMoney(r.Money),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(shown) < len(records) {
		_, err := fmt.Fprintf(w, "... %s more rows\n", FormatInt(len(records)-len(shown)))
		return err
	}
	return nil
}

// MeasureLabel returns the column heading for a measure
func MeasureLabel(m query.Measure) string {
	switch m {
	case query.Count:
		return "Cups sold"
	case query.SumMoney:
		return "Revenue"
	case query.MeanMoney:
		return "Avg revenue"
	}
	return "Value"
}

// FormatValue renders an aggregate value according to its measure
func FormatValue(m query.Measure, v decimal.Decimal) string {
	if m == query.Count {
		return FormatInt(int(v.IntPart()))
	}
	return FormatMoney(v)
}

// RenderAggregate writes a grouped aggregate as a two-column table
func RenderAggregate(w io.Writer, title string, res query.AggregateResult) error {
	if title != "" {
		if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
			return err
		}
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "%s\t%s\n", res.Field.Column(), MeasureLabel(res.Measure))
	for _, g := range res.Groups {
		fmt.Fprintf(tw, "%s\t%s\n", g.Key, FormatValue(res.Measure, g.Value))
	}
	if len(res.Groups) == 0 {
		fmt.Fprintf(tw, "Warning:\t%s\n", query.ErrEmptyResult)
	}
	return tw.Flush()
}

// RenderValues writes the distinct values of every field, one field per line
func RenderValues(w io.Writer, d *sale.Dataset) error {
	tw := newTable(w)
	for _, f := range sale.Fields {
		vals := d.Values(f)
		fmt.Fprintf(tw, "%s\t%d\t%s\n", f.Column(), len(vals), strings.Join(vals, ", "))
	}
	return tw.Flush()
}
