package attendance

import (
	"math"
	"time"

	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/domain/policy"
)

const minutesPerDay = 24 * 60

// MinutesLate measures how far past the scheduled shift start a local
// check-in lands, in whole minutes (partial minutes never count against
// the employee). Night shifts that wrap past midnight are corrected by a
// day; early arrivals clamp to zero.
func MinutesLate(date attendance.BusinessDate, shift attendance.ShiftWindow, checkinLocal time.Time) int {
	scheduled := shiftStartOn(date, shift)
	minutes := int(math.Floor(checkinLocal.Sub(scheduled).Minutes()))

	if shift.CrossesMidnight() && minutes < 0 {
		minutes += minutesPerDay
	}
	if minutes < 0 {
		minutes = 0
	}
	return minutes
}

// Classify maps minutes late onto a day status using the company
// thresholds. The bands are inclusive at their upper edge: arriving
// exactly at a threshold still earns the milder status.
func Classify(minutesLate int, t policy.Thresholds) attendance.Status {
	switch {
	case minutesLate <= t.LateTimeMinutes:
		return attendance.StatusPresent
	case minutesLate <= t.HalfTimeMinutes:
		return attendance.StatusLate
	case minutesLate <= t.AbsentTimeMinutes:
		return attendance.StatusHalfDay
	default:
		return attendance.StatusAbsent
	}
}
