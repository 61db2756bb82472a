package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/coffee-sales/pkg/sale"
)

// ErrInvalidMeasure is returned when a measure name is not recognized
var ErrInvalidMeasure = errors.New("invalid measure")

// ErrInvalidSort is returned when a sort direction name is not recognized
var ErrInvalidSort = errors.New("invalid sort direction")

// Measure is the aggregation applied to the money of each group
type Measure int

const (
	Count Measure = iota
	SumMoney
	MeanMoney
)

func (m Measure) String() string {
	switch m {
	case Count:
		return "count"
	case SumMoney:
		return "sum"
	case MeanMoney:
		return "mean"
	}
	return fmt.Sprintf("Measure(%d)", int(m))
}

// MarshalText encodes the measure by name
func (m Measure) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMeasure resolves "count", "sum" or "mean" (also "avg")
func ParseMeasure(name string) (Measure, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "count":
		return Count, nil
	case "sum":
		return SumMoney, nil
	case "mean", "avg":
		return MeanMoney, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMeasure, name)
}

// SortDirection orders aggregate groups by their value
type SortDirection int

const (
	Descending SortDirection = iota
	Ascending
	Unsorted
)

func (s SortDirection) String() string {
	switch s {
	case Descending:
		return "desc"
	case Ascending:
		return "asc"
	case Unsorted:
		return "none"
	}
	return fmt.Sprintf("SortDirection(%d)", int(s))
}

// MarshalText encodes the direction by name
func (s SortDirection) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSortDirection resolves "desc", "asc" or "none"
func ParseSortDirection(name string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "desc", "descending":
		return Descending, nil
	case "asc", "ascending":
		return Ascending, nil
	case "none":
		return Unsorted, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSort, name)
}

// Group is one partition of an aggregate
type Group struct {
	Key   string          `json:"key"`
	Value decimal.Decimal `json:"value"`
	Count int             `json:"count"`
}

// AggregateResult holds the groups of one aggregation, already sorted
type AggregateResult struct {
	Field   sale.Field    `json:"field"`
	Measure Measure       `json:"measure"`
	Sort    SortDirection `json:"sort"`
	Groups  []Group       `json:"groups"`
}

// GroupAggregate partitions records by field, measures each group and sorts the groups.
// Groups with equal values keep the order in which their key first appeared.
func GroupAggregate(records []sale.Record, field sale.Field, measure Measure, dir SortDirection) AggregateResult {
	result := AggregateResult{Field: field, Measure: measure, Sort: dir, Groups: []Group{}}

	sums := make(map[string]decimal.Decimal)
	positions := make(map[string]int)
	for _, r := range records {
		key := r.Value(field)
		pos, ok := positions[key]
		if !ok {
			pos = len(result.Groups)
			positions[key] = pos
			result.Groups = append(result.Groups, Group{Key: key})
			sums[key] = decimal.Zero
		}
		g := &result.Groups[pos]
		g.Count++
		sums[key] = sums[key].Add(r.Money)
	}

	for i := range result.Groups {
		g := &result.Groups[i]
		switch measure {
		case Count:
			g.Value = decimal.NewFromInt(int64(g.Count))
		case SumMoney:
			g.Value = sums[g.Key]
		case MeanMoney:
			g.Value = sums[g.Key].Div(decimal.NewFromInt(int64(g.Count)))
		}
	}

	sortGroups(result.Groups, dir)
	return result
}

func sortGroups(groups []Group, dir SortDirection) {
	switch dir {
	case Descending:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value.GreaterThan(groups[j].Value) })
	case Ascending:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value.LessThan(groups[j].Value) })
	default:
		// keep first-seen order
	}
}
