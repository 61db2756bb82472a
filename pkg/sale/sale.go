package sale

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NonCard is the category assigned to sales without a payment card value
const NonCard = "Non-card"

// Record represents a single coffee sale
type Record struct {
	Row        int             `json:"row"`
	Date       time.Time       `json:"date"`
	TimeOfDay  string          `json:"time_of_day"`
	Weekday    string          `json:"weekday"`
	MonthName  string          `json:"month_name"`
	CoffeeName string          `json:"coffee_name"`
	CashType   string          `json:"cash_type"`
	Card       string          `json:"card"`
	Money      decimal.Decimal `json:"money"`
}

// Value returns the categorical value of the record for the given field
func (r Record) Value(f Field) string {
	switch f {
	case CoffeeName:
		return r.CoffeeName
	case TimeOfDay:
		return r.TimeOfDay
	case MonthName:
		return r.MonthName
	case CashType:
		return r.CashType
	case Weekday:
		return r.Weekday
	case Card:
		return r.Card
	}
	return ""
}

// Normalize fills the nullable payment columns with NonCard
func Normalize(r Record) Record {
	if strings.TrimSpace(r.Card) == "" {
		r.Card = NonCard
	}
	if strings.TrimSpace(r.CashType) == "" {
		r.CashType = NonCard
	}
	return r
}

// Field identifies a categorical column that records can be filtered and grouped by
type Field int

const (
	CoffeeName Field = iota
	TimeOfDay
	MonthName
	CashType
	Weekday
	Card
)

// Fields lists every categorical field in dashboard order
var Fields = []Field{CoffeeName, TimeOfDay, MonthName, CashType, Weekday, Card}

var fieldColumns = map[Field]string{
	CoffeeName: "coffee_name",
	TimeOfDay:  "Time_of_Day",
	MonthName:  "Month_name",
	CashType:   "cash_type",
	Weekday:    "Weekday",
	Card:       "card",
}

// Column returns the source column name of the field
func (f Field) Column() string {
	return fieldColumns[f]
}

func (f Field) String() string {
	if c, ok := fieldColumns[f]; ok {
		return c
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// MarshalText encodes the field as its column name
func (f Field) MarshalText() ([]byte, error) {
	if _, ok := fieldColumns[f]; !ok {
		return nil, fmt.Errorf("unknown field %d", int(f))
	}
	return []byte(f.Column()), nil
}

// UnmarshalText decodes a column name into a field
func (f *Field) UnmarshalText(text []byte) error {
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// UnknownFieldError is returned when a name does not match any categorical field
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Name)
}

// ParseField resolves a column name, ignoring case, into a Field
func ParseField(name string) (Field, error) {
	trimmed := strings.TrimSpace(name)
	for _, f := range Fields {
		if strings.EqualFold(trimmed, f.Column()) {
			return f, nil
		}
	}
	return 0, &UnknownFieldError{Name: name}
}
