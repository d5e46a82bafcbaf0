// Package types implements special types for Pocketledger.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Month is a month in a specific year.
//
// It is the partition key for transactions and monthly budgets: every
// transaction and every budget row belongs to exactly one Month.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// String returns the month formatted as YYYY-MM.
//
// The zero padding makes lexicographic comparison of the strings equivalent
// to chronological comparison of the months.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalJSON implements the json.Marshaler interface.
// Months are serialized in their canonical YYYY-MM form.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// It accepts the canonical YYYY-MM form as well as a full calendar date,
// from which everything except year and month is ignored.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	month, err := ParseMonth(value)
	if err != nil {
		return err
	}

	*m = month
	return nil
}

// MonthOf returns the Month in which a time occurs.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it
// represents. "YYYY-MM-DD" strings are accepted, too.
func ParseMonth(s string) (Month, error) {
	for _, pattern := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(pattern, s); err == nil {
			return MonthOf(t), nil
		}
	}

	return Month{}, fmt.Errorf("%q is not a month in YYYY-MM format", s)
}

// Scan reads the value from the database.
func (m *Month) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*m = MonthOf(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (m Month) Value() (driver.Value, error) {
	year, month, _ := time.Time(m).Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Month) GormDataType() string {
	return "date"
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
//
// As the underlying day is always the first of the month, this never
// rolls over into a neighboring month.
func (m Month) AddDate(years, months int) Month {
	return MonthOf(time.Time(m).AddDate(years, months, 0))
}

// Before reports whether the month instant m is before n.
func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}

// After reports whether the month instant m is after n.
func (m Month) After(n Month) bool {
	return time.Time(m).After(time.Time(n))
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == time.Time(m).Year() && t.Month() == time.Time(m).Month()
}
