package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTimezoneOffsetMinutes is applied when a request carries no
// explicit offset (UTC+5).
const DefaultTimezoneOffsetMinutes = 300

// Status is the authoritative classification of one employee-day.
type Status string

const (
	StatusNone    Status = ""
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusHalfDay, StatusAbsent, StatusLeave:
		return true
	}
	return false
}

// Mode records where the employee worked that day.
type Mode string

const (
	ModeOnsite Mode = "onsite"
	ModeRemote Mode = "remote"
)

// DailyLog is the single attendance record for (employee, business date).
// Logs are upserted in place on status changes and never deleted.
type DailyLog struct {
	ID         string
	EmployeeID string
	Date       BusinessDate
	Checkin    *time.Time
	Checkout   *time.Time
	Mode       Mode
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Counters is the counter shape shared by the lifetime row and the
// monthly summaries. QuarterlyLeaves and MonthlyLates are only ever
// mutated on the lifetime row.
type Counters struct {
	PresentDays     int
	AbsentDays      int
	LateDays        int
	LeaveDays       int
	RemoteDays      int
	QuarterlyLeaves int
	MonthlyLates    int
	HalfDays        int
}

// LifetimeCounters is the per-employee lifetime aggregate, created lazily
// on first mutation.
type LifetimeCounters struct {
	ID         string
	EmployeeID string
	Counters
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MonthlySummary is the per-(employee, month) aggregate, created lazily.
type MonthlySummary struct {
	ID         string
	EmployeeID string
	Month      Month
	Counters
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShiftTime is a wall-clock time of day ("HH:MM").
type ShiftTime struct {
	Hour   int
	Minute int
}

func ParseShiftTime(s string) (ShiftTime, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return ShiftTime{}, fmt.Errorf("invalid shift time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return ShiftTime{}, fmt.Errorf("invalid shift hour %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return ShiftTime{}, fmt.Errorf("invalid shift minute %q", s)
	}
	return ShiftTime{Hour: h, Minute: m}, nil
}

// Minutes returns minutes since midnight.
func (t ShiftTime) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t ShiftTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ShiftWindow is an employee's scheduled working window.
type ShiftWindow struct {
	Start ShiftTime
	End   ShiftTime
}

func ParseShiftWindow(start, end string) (ShiftWindow, error) {
	s, err := ParseShiftTime(start)
	if err != nil {
		return ShiftWindow{}, err
	}
	e, err := ParseShiftTime(end)
	if err != nil {
		return ShiftWindow{}, err
	}
	return ShiftWindow{Start: s, End: e}, nil
}

// CrossesMidnight reports whether the shift ends on the calendar day
// after it starts (night shift).
func (w ShiftWindow) CrossesMidnight() bool {
	return w.End.Hour < w.Start.Hour
}
