package query

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/example/coffee-sales/pkg/sale"
)

var (
	// ErrEmptyResult is a warning: the filters matched no records
	ErrEmptyResult = errors.New("no records match the selected filters")
	// ErrDivisionByZero is returned by Mean and Share when the divisor is zero
	ErrDivisionByZero = errors.New("division by zero")
)

var hundred = decimal.NewFromInt(100)

// Metrics holds the quick overview numbers for a view
type Metrics struct {
	Count        int             `json:"count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	AvgSale      Average         `json:"avg_sale"`
	Contribution Percent         `json:"pct_contribution"`
}

// Warning returns ErrEmptyResult when the metrics were computed over no records
func (m Metrics) Warning() error {
	if m.Count == 0 {
		return ErrEmptyResult
	}
	return nil
}

// Average is a mean that may be undefined
type Average struct {
	Value decimal.Decimal
	Valid bool
}

func (a Average) String() string {
	if !a.Valid {
		return "no data"
	}
	return a.Value.StringFixed(2)
}

// MarshalJSON encodes an undefined average as null
func (a Average) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return a.Value.MarshalJSON()
}

// Percent is a share of a total that may be undefined
type Percent struct {
	Value decimal.Decimal
	Valid bool
}

func (p Percent) String() string {
	if !p.Valid {
		return "n/a"
	}
	return p.Value.StringFixed(2) + "%"
}

// MarshalText encodes the percentage as rendered, e.g. "75.00%"
func (p Percent) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Sum adds up the money of the records
func Sum(records []sale.Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Money)
	}
	return total
}

// Mean returns the average money of the records
func Mean(records []sale.Record) (decimal.Decimal, error) {
	if len(records) == 0 {
		return decimal.Zero, ErrDivisionByZero
	}
	return Sum(records).Div(decimal.NewFromInt(int64(len(records)))), nil
}

// Share returns part as a percentage of total
func Share(part, total decimal.Decimal) (decimal.Decimal, error) {
	if total.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	return part.Div(total).Mul(hundred), nil
}

// Summarize computes the overview metrics of a view.
// Contribution is measured against the revenue of the whole dataset.
func Summarize(d *sale.Dataset, v *View) Metrics {
	records := v.Records()
	m := Metrics{
		Count:        len(records),
		TotalRevenue: Sum(records),
	}

	if avg, err := Mean(records); err == nil {
		m.AvgSale = Average{Value: avg, Valid: true}
	}
	if pct, err := Share(m.TotalRevenue, d.Total()); err == nil {
		m.Contribution = Percent{Value: pct, Valid: true}
	}
	return m
}
