package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Period is a year-month pair, the reference month a payment record bills for.
// It is stored as a "YYYY-MM" string.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses a "YYYY-MM" string.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: %v", s, err)
	}
	return PeriodOf(t), nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Time returns midnight UTC on the first day of the period.
func (p Period) Time() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Compare returns -1, 0 or 1 comparing p to o chronologically.
func (p Period) Compare(o Period) int {
	a := p.Year*12 + int(p.Month)
	b := o.Year*12 + int(o.Month)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (p Period) Before(o Period) bool {
	return p.Compare(o) < 0
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Value implements driver.Valuer so a Period can be bound as a query argument.
func (p Period) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements sql.Scanner, accepting "YYYY-MM" from the store.
func (p *Period) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParsePeriod(v)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case []byte:
		parsed, err := ParsePeriod(string(v))
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case time.Time:
		*p = PeriodOf(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Period", src)
	}
}

// MarshalJSON renders the period as its "YYYY-MM" string.
func (p Period) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON parses a quoted "YYYY-MM" string.
func (p *Period) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid period %s", s)
	}
	parsed, err := ParsePeriod(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
