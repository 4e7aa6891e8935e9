package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day without time or zone. It is written as "YYYY-MM-DD"
// so the same value works against a Postgres DATE and a SQLite TEXT column.
type Date struct{ time.Time }

// NewDate keeps only the calendar day of t, as seen in t's own location.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts "YYYY-MM-DD" only; 2024-02-30 and friends are rejected.
func ParseDate(s string) (Date, error) {
	var d Date
	return d, d.parse(s)
}

func (d *Date) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("date: empty value")
	}
	// Postgres/SQLite may hand back a full timestamp for DATE columns.
	if len(s) > len(DateLayout) {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			*d = NewDate(t)
			return nil
		}
		if t, err := time.Parse("2006-01-02 15:04:05-07:00", s); err == nil {
			*d = NewDate(t)
			return nil
		}
		if c := s[len(DateLayout)]; c != 'T' && c != ' ' {
			return fmt.Errorf("date: %q is not a valid YYYY-MM-DD date", s)
		}
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("date: %q is not a valid YYYY-MM-DD date", s)
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// AddDays returns the day n days away (negative n goes back).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) After(o Date) bool  { return d.Time.After(o.Time) }
func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }
func (d Date) Equal(o Date) bool  { return d.Time.Equal(o.Time) }

// DaysInclusive counts calendar days in [start, end]; 0 when start > end.
func DaysInclusive(start, end Date) int {
	if start.After(end) {
		return 0
	}
	return int(end.Time.Sub(start.Time).Hours()/24) + 1
}

// Scan accepts time.Time, string or []byte.
func (d *Date) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*d = NewDate(x)
		return nil
	case []byte:
		return d.parse(string(x))
	case string:
		return d.parse(x)
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("date: unsupported Scan type %T", v)
	}
}

func (d Date) Value() (driver.Value, error) {
	if d.Time.IsZero() {
		return nil, nil
	}
	return d.Format(DateLayout), nil
}

func (Date) GormDataType() string { return "date" }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return d.parse(s)
}
