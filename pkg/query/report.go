package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/coffee-sales/pkg/sale"
)

// ErrUnknownReport is returned when a report name is not in the catalog
var ErrUnknownReport = errors.New("unknown report")

// ErrInvalidScope is returned when a report scope name is not recognized
var ErrInvalidScope = errors.New("invalid report scope")

// Scope selects which records a report aggregates
type Scope int

const (
	// ScopeFiltered aggregates the filtered view
	ScopeFiltered Scope = iota
	// ScopeFull aggregates the whole dataset, ignoring filters
	ScopeFull
)

func (s Scope) String() string {
	if s == ScopeFull {
		return "full"
	}
	return "filtered"
}

// MarshalText encodes the scope by name
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseScope resolves "filtered" or "full"
func ParseScope(name string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "filtered", "view":
		return ScopeFiltered, nil
	case "full", "all", "dataset":
		return ScopeFull, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidScope, name)
}

// Report is a named grouped aggregate shown on the dashboard
type Report struct {
	Name    string        `json:"name"`
	Title   string        `json:"title"`
	Field   sale.Field    `json:"field"`
	Measure Measure       `json:"measure"`
	Scope   Scope         `json:"scope"`
	Sort    SortDirection `json:"sort"`
}

// DefaultReports returns the built-in report catalog.
// The average-per-coffee report sorts ascending, unlike the others.
func DefaultReports() []Report {
	return []Report{
		{
			Name:    "cups_by_time_of_day",
			Title:   "Cups sold by time of day",
			Field:   sale.TimeOfDay,
			Measure: Count,
			Scope:   ScopeFull,
			Sort:    Descending,
		},
		{
			Name:    "revenue_by_coffee",
			Title:   "Revenue by coffee type",
			Field:   sale.CoffeeName,
			Measure: SumMoney,
			Scope:   ScopeFiltered,
			Sort:    Descending,
		},
		{
			Name:    "revenue_by_month",
			Title:   "Monthly sales",
			Field:   sale.MonthName,
			Measure: SumMoney,
			Scope:   ScopeFull,
			Sort:    Descending,
		},
		{
			Name:    "avg_revenue_by_coffee",
			Title:   "Average revenue per coffee sold",
			Field:   sale.CoffeeName,
			Measure: MeanMoney,
			Scope:   ScopeFull,
			Sort:    Ascending,
		},
	}
}

// Run aggregates the report over the dataset or the view, depending on its scope
func (r Report) Run(d *sale.Dataset, v *View) AggregateResult {
	var records []sale.Record
	if r.Scope == ScopeFull || v == nil {
		records = d.Records()
	} else {
		records = v.Records()
	}
	return GroupAggregate(records, r.Field, r.Measure, r.Sort)
}

// Catalog is an ordered set of reports addressable by name
type Catalog struct {
	reports []Report
}

// NewCatalog builds a catalog from the given reports
func NewCatalog(reports []Report) *Catalog {
	c := &Catalog{reports: make([]Report, len(reports))}
	copy(c.reports, reports)
	return c
}

// Reports returns the reports in catalog order
func (c *Catalog) Reports() []Report {
	out := make([]Report, len(c.reports))
	copy(out, c.reports)
	return out
}

// Get returns the report with the given name
func (c *Catalog) Get(name string) (Report, error) {
	for _, r := range c.reports {
		if r.Name == name {
			return r, nil
		}
	}
	return Report{}, fmt.Errorf("%w: %q", ErrUnknownReport, name)
}

// Override replaces the sort direction and scope of a named report
func (c *Catalog) Override(name string, sort SortDirection, scope Scope) error {
	for i := range c.reports {
		if c.reports[i].Name == name {
			c.reports[i].Sort = sort
			c.reports[i].Scope = scope
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownReport, name)
}
