package query

import (
	"github.com/shopspring/decimal"

	"github.com/example/coffee-sales/pkg/sale"
)

func scenarioDataset() *sale.Dataset {
	return sale.NewDataset([]sale.Record{
		{CoffeeName: "Latte", Money: decimal.NewFromInt(5), TimeOfDay: "Morning"},
		{CoffeeName: "Latte", Money: decimal.NewFromInt(7), TimeOfDay: "Afternoon"},
		{CoffeeName: "Mocha", Money: decimal.NewFromInt(4), TimeOfDay: "Morning"},
	})
}

func shopDataset() *sale.Dataset {
	rec := func(coffee, tod, weekday, month, cash string, money string) sale.Record {
		return sale.Record{
			CoffeeName: coffee,
			TimeOfDay:  tod,
			Weekday:    weekday,
			MonthName:  month,
			CashType:   cash,
			Money:      decimal.RequireFromString(money),
		}
	}
	return sale.NewDataset([]sale.Record{
		rec("Latte", "Morning", "Mon", "Mar", "card", "38.70"),
		rec("Hot Chocolate", "Night", "Mon", "Mar", "card", "38.70"),
		rec("Americano", "Afternoon", "Tue", "Mar", "cash", "28.90"),
		rec("Latte", "Night", "Wed", "Apr", "card", "33.80"),
		rec("Cappuccino", "Morning", "Wed", "Apr", "card", "35.76"),
		rec("Americano", "Morning", "Thu", "Apr", "cash", "25.96"),
		rec("Espresso", "Afternoon", "Fri", "May", "card", "21.06"),
		rec("Latte", "Afternoon", "Sat", "May", "", "32.82"),
	})
}

func groupKeys(res AggregateResult) []string {
	keys := make([]string, len(res.Groups))
	for i, g := range res.Groups {
		keys[i] = g.Key
	}
	return keys
}

func groupValue(res AggregateResult, key string) (decimal.Decimal, bool) {
	for _, g := range res.Groups {
		if g.Key == key {
			return g.Value, true
		}
	}
	return decimal.Zero, false
}
