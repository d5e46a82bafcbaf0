package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day without a time component.
//
// Transactions carry their date as a Date; the month a transaction belongs
// to is always derived from it via Date.Month().
type Date time.Time

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the Date of the day a time occurs on.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("%q is not a date in YYYY-MM-DD format", s)
	}

	return DateOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format("2006-01-02")
}

// Month returns the Month the date falls in.
func (d Date) Month() Month {
	return MonthOf(time.Time(d))
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// It accepts "YYYY-MM-DD" as well as RFC3339 timestamps, from which the
// time of day is discarded.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		*d = DateOf(t)
		return nil
	}

	date, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = date
	return nil
}

// Scan reads the value from the database.
func (d *Date) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*d = DateOf(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (d Date) Value() (driver.Value, error) {
	year, month, day := time.Time(d).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Date) GormDataType() string {
	return "date"
}
