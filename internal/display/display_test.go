package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/coffee-sales/pkg/query"
	"github.com/example/coffee-sales/pkg/sale"
)

func dataset() *sale.Dataset {
	return sale.NewDataset([]sale.Record{
		{CoffeeName: "Latte", Money: decimal.NewFromInt(5), TimeOfDay: "Morning"},
		{CoffeeName: "Latte", Money: decimal.NewFromInt(7), TimeOfDay: "Afternoon"},
		{CoffeeName: "Mocha", Money: decimal.NewFromInt(4), TimeOfDay: "Morning"},
	})
}

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":           "0.00",
		"38.7":        "38.70",
		"1234.5":      "1,234.50",
		"1234567.891": "1,234,567.89",
		"-9876.5":     "-9,876.50",
		"999.999":     "1,000.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", FormatInt(0))
	assert.Equal(t, "999", FormatInt(999))
	assert.Equal(t, "3,547", FormatInt(3547))
	assert.Equal(t, "-1,000,000", FormatInt(-1000000))
}

func TestRenderMetrics(t *testing.T) {
	d := dataset()
	var buf bytes.Buffer

	m := query.Summarize(d, query.ApplyFilters(d, query.FilterSpec{sale.CoffeeName: {"Latte"}}))
	require.NoError(t, RenderMetrics(&buf, m))

	out := buf.String()
	assert.Contains(t, out, "Quick Overview")
	assert.Contains(t, out, "12.00")
	assert.Contains(t, out, "6.00")
	assert.Contains(t, out, "75.00%")
	assert.NotContains(t, out, "Warning")
}

func TestRenderMetrics_Empty(t *testing.T) {
	d := dataset()
	var buf bytes.Buffer

	m := query.Summarize(d, query.ApplyFilters(d, query.FilterSpec{sale.CoffeeName: {"Flat White"}}))
	require.NoError(t, RenderMetrics(&buf, m))

	out := buf.String()
	assert.Contains(t, out, "no data")
	assert.Contains(t, out, "0.00%")
	assert.Contains(t, out, query.ErrEmptyResult.Error())
}

func TestRenderRecords_Limit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRecords(&buf, dataset().Records(), 2))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "coffee_name")
	assert.Contains(t, lines[1], "Latte")
	assert.Contains(t, lines[1], sale.NonCard)
	assert.Equal(t, "... 1 more rows", lines[3])
}

func TestRenderAggregate(t *testing.T) {
	res := query.GroupAggregate(dataset().Records(), sale.CoffeeName, query.SumMoney, query.Descending)

	var buf bytes.Buffer
	require.NoError(t, RenderAggregate(&buf, "Revenue by coffee type", res))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Revenue by coffee type", lines[0])
	assert.Contains(t, lines[1], "Revenue")
	assert.Contains(t, lines[2], "Latte")
	assert.Contains(t, lines[2], "12.00")
	assert.Contains(t, lines[3], "Mocha")
}

func TestRenderAggregate_Empty(t *testing.T) {
	res := query.GroupAggregate(nil, sale.CoffeeName, query.SumMoney, query.Descending)

	var buf bytes.Buffer
	require.NoError(t, RenderAggregate(&buf, "", res))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Warning:")
	assert.Contains(t, lines[1], query.ErrEmptyResult.Error())
}

func TestBarChart(t *testing.T) {
	res := query.GroupAggregate(dataset().Records(), sale.TimeOfDay, query.Count, query.Descending)

	var buf bytes.Buffer
	require.NoError(t, BarChart(&buf, res, 10))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 10, strings.Count(lines[0], barRune))
	assert.Equal(t, 5, strings.Count(lines[1], barRune))
	assert.True(t, strings.HasSuffix(lines[0], " 2"))
}

func TestBarChart_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, BarChart(&buf, query.AggregateResult{}, 0))
	assert.Empty(t, buf.String())
}

func TestNotice(t *testing.T) {
	n := NewNotice(errors.New("failed to load Coffee_sales.xlsx: file not found"))
	assert.Equal(t, GenericError, n.Message)
	assert.NotEmpty(t, n.Ref)

	var buf bytes.Buffer
	n.Render(&buf, false)
	assert.Contains(t, buf.String(), GenericError)
	assert.Contains(t, buf.String(), n.Ref)
	assert.NotContains(t, buf.String(), "file not found")

	buf.Reset()
	n.Render(&buf, true)
	assert.Contains(t, buf.String(), "Error Details")
	assert.Contains(t, buf.String(), "file not found")
}

func TestRenderValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderValues(&buf, dataset()))

	out := buf.String()
	assert.Contains(t, out, "Latte, Mocha")
	assert.Contains(t, out, "Morning, Afternoon")
	assert.NotContains(t, out, "[")
}
