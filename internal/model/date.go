package model

import (
	"time"

	"github.com/goccy/go-json"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with day precision, anchored at midnight UTC. All
// month windowing and interval arithmetic happen on UTC dates so results do
// not depend on the host timezone.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateFromTime truncates t to its UTC calendar date.
func DateFromTime(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// SameMonth reports whether both dates fall in the same calendar month and year.
func (d Date) SameMonth(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month()
}

// DaysSince returns the number of whole days from other to d. Negative when
// other is after d.
func (d Date) DaysSince(other Date) int {
	return int(d.Sub(other.Time).Hours() / 24)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

// UnmarshalJSON parses a "YYYY-MM-DD" string. A value that is not a parseable
// date is kept as the zero Date rather than failing the whole load: the
// aggregator refuses to compute over zero dates, which surfaces the integrity
// problem on the computation that actually depends on it instead of silently
// dropping the record at load time.
func (d *Date) UnmarshalJSON(b []byte) error {
	*d = Date{}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}

	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return nil
	}

	d.Time = t
	return nil
}
