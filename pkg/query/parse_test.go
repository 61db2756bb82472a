package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/coffee-sales/pkg/sale"
)

func TestParseFilterArgs(t *testing.T) {
	spec, err := ParseFilterArgs([]string{
		"coffee_name=Latte,Mocha",
		"Weekday=Mon",
		"weekday= Tue ,",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Latte", "Mocha"}, spec[sale.CoffeeName])
	assert.Equal(t, []string{"Mon", "Tue"}, spec[sale.Weekday])
	assert.Len(t, spec, 2)
}

func TestParseFilterArgs_Errors(t *testing.T) {
	_, err := ParseFilterArgs([]string{"coffee_name"})
	assert.Error(t, err)

	_, err = ParseFilterArgs([]string{"barista=Ann"})
	var unknown *sale.UnknownFieldError
	assert.ErrorAs(t, err, &unknown)
}

func TestFilterSpecFromValues(t *testing.T) {
	values := url.Values{
		"coffee_name": {"Latte", "Mocha,Cortado"},
		"Time_of_Day": {""},
		"sort":        {"asc"},
	}

	spec, err := FilterSpecFromValues(values, "sort")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Latte", "Mocha", "Cortado"}, spec[sale.CoffeeName])
	assert.Empty(t, spec[sale.TimeOfDay])
	assert.True(t, FilterSpec{sale.TimeOfDay: spec[sale.TimeOfDay]}.IsEmpty())

	_, err = FilterSpecFromValues(values)
	assert.Error(t, err)
}
