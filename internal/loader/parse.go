package loader

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/example/coffee-sales/pkg/sale"
)

const (
	colDate  = "date"
	colMoney = "money"
)

// RequiredColumns lists the header names every sales file must carry
var RequiredColumns = []string{
	colDate,
	sale.CoffeeName.Column(),
	colMoney,
	sale.CashType.Column(),
	sale.TimeOfDay.Column(),
	sale.Weekday.Column(),
	sale.MonthName.Column(),
	sale.Card.Column(),
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
}

func parseRows(rows [][]string) ([]sale.Record, error) {
	if len(rows) == 0 {
		return nil, &LoadError{Reason: "missing header row"}
	}

	columns := make(map[string]int)
	for i, h := range rows[0] {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := columns[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &LoadError{Row: 1, Reason: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}

	records := make([]sale.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		line := i + 2
		cell := func(name string) string {
			idx := columns[name]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		date, err := parseDate(cell(colDate))
		if err != nil {
			return nil, &LoadError{Row: line, Column: colDate, Err: err}
		}
		money, err := parseMoney(cell(colMoney))
		if err != nil {
			return nil, &LoadError{Row: line, Column: colMoney, Err: err}
		}

		records = append(records, sale.Record{
			Date:       date,
			CoffeeName: cell(sale.CoffeeName.Column()),
			TimeOfDay:  cell(sale.TimeOfDay.Column()),
			Weekday:    cell(sale.Weekday.Column()),
			MonthName:  cell(sale.MonthName.Column()),
			CashType:   cell(sale.CashType.Column()),
			Card:       cell(sale.Card.Column()),
			Money:      money,
		})
	}
	return records, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseDate accepts Excel serial dates as well as common text layouts
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date serial %q: %w", s, err)
		}
		return t, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %q", s)
	}
	return d, nil
}
