package query

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/coffee-sales/pkg/sale"
)

func TestSummarize_FilteredScenario(t *testing.T) {
	d := scenarioDataset()
	v := ApplyFilters(d, FilterSpec{sale.CoffeeName: {"Latte"}})

	m := Summarize(d, v)

	assert.Equal(t, 2, m.Count)
	assert.Equal(t, "12", m.TotalRevenue.String())
	require.True(t, m.AvgSale.Valid)
	assert.Equal(t, "6", m.AvgSale.Value.String())
	assert.Equal(t, "6.00", m.AvgSale.String())
	assert.Equal(t, "75.00%", m.Contribution.String())
	assert.NoError(t, m.Warning())
}

func TestSummarize_UnfilteredScenario(t *testing.T) {
	d := scenarioDataset()

	m := Summarize(d, ApplyFilters(d, FilterSpec{}))

	assert.Equal(t, 3, m.Count)
	assert.Equal(t, "16", m.TotalRevenue.String())
	assert.Equal(t, "5.33", m.AvgSale.String())
	assert.Equal(t, "100.00%", m.Contribution.String())
}

func TestSummarize_EmptyView(t *testing.T) {
	d := scenarioDataset()
	v := ApplyFilters(d, FilterSpec{sale.CoffeeName: {"Espresso"}})

	m := Summarize(d, v)

	assert.Equal(t, 0, m.Count)
	assert.True(t, m.TotalRevenue.IsZero())
	assert.False(t, m.AvgSale.Valid)
	assert.Equal(t, "no data", m.AvgSale.String())
	assert.Equal(t, "0.00%", m.Contribution.String())
	assert.ErrorIs(t, m.Warning(), ErrEmptyResult)
}

func TestSummarize_ZeroDatasetTotal(t *testing.T) {
	d := sale.NewDataset([]sale.Record{
		{CoffeeName: "Water", Money: decimal.Zero},
	})

	m := Summarize(d, FullView(d))

	assert.Equal(t, 1, m.Count)
	assert.Equal(t, "0.00", m.AvgSale.String())
	assert.False(t, m.Contribution.Valid)
	assert.Equal(t, "n/a", m.Contribution.String())
}

func TestSummarize_EmptyDataset(t *testing.T) {
	d := sale.NewDataset(nil)

	m := Summarize(d, FullView(d))

	assert.Equal(t, 0, m.Count)
	assert.Equal(t, "no data", m.AvgSale.String())
	assert.Equal(t, "n/a", m.Contribution.String())
}

func TestMean(t *testing.T) {
	_, err := Mean(nil)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	avg, err := Mean(scenarioDataset().Records())
	require.NoError(t, err)
	assert.Equal(t, "5.33", avg.StringFixed(2))
}

func TestShare(t *testing.T) {
	_, err := Share(decimal.NewFromInt(3), decimal.Zero)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	pct, err := Share(decimal.NewFromInt(1), decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.Equal(t, "33.33", pct.StringFixed(2))
}

func TestMetrics_JSON(t *testing.T) {
	d := scenarioDataset()

	b, err := json.Marshal(Summarize(d, FullView(d)))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"count":3`)
	assert.Contains(t, string(b), `"pct_contribution":"100.00%"`)

	empty := ApplyFilters(d, FilterSpec{sale.CoffeeName: {"none"}})
	b, err = json.Marshal(Summarize(d, empty))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"avg_sale":null`)
}
