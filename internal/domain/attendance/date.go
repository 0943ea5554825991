package attendance

import (
	"fmt"
	"time"
)

// BusinessDate is a calendar day with no time or zone component. It is
// the attribution key for logs, incidents, and monthly summaries;
// "YYYY-MM-DD" strings appear only at the API and storage boundaries.
type BusinessDate struct {
	t time.Time
}

func NewBusinessDate(year int, month time.Month, day int) BusinessDate {
	return BusinessDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// BusinessDateOf takes the calendar date of t in t's own location.
func BusinessDateOf(t time.Time) BusinessDate {
	y, m, d := t.Date()
	return NewBusinessDate(y, m, d)
}

func ParseBusinessDate(s string) (BusinessDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return BusinessDate{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return BusinessDateOf(t), nil
}

func (d BusinessDate) String() string {
	return d.t.Format("2006-01-02")
}

// Time returns midnight UTC of the date, for storage.
func (d BusinessDate) Time() time.Time {
	return d.t
}

func (d BusinessDate) IsZero() bool {
	return d.t.IsZero()
}

func (d BusinessDate) AddDays(n int) BusinessDate {
	return BusinessDate{t: d.t.AddDate(0, 0, n)}
}

func (d BusinessDate) Before(u BusinessDate) bool {
	return d.t.Before(u.t)
}

func (d BusinessDate) After(u BusinessDate) bool {
	return d.t.After(u.t)
}

func (d BusinessDate) Equal(u BusinessDate) bool {
	return d.t.Equal(u.t)
}

func (d BusinessDate) Month() Month {
	return Month{Year: d.t.Year(), Month: d.t.Month()}
}

// DaysUntil returns the number of days from d to u inclusive of both
// endpoints. Zero when u is before d.
func (d BusinessDate) DaysUntil(u BusinessDate) int {
	if u.Before(d) {
		return 0
	}
	return int(u.t.Sub(d.t).Hours()/24) + 1
}

// Month is a calendar month ("YYYY-MM"). The zero value is invalid.
// Comparable, so it can key maps of per-month day counts.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) IsZero() bool {
	return m.Year == 0
}
