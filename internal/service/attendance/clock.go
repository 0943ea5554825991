package attendance

import (
	"time"

	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
)

// Localize shifts an instant into the caller's wall clock using a fixed
// minute offset. No IANA zone lookups: the offset is the whole input, so
// the same instant and offset always produce the same local time.
func Localize(instant time.Time, offsetMinutes *int) time.Time {
	offset := attendance.DefaultTimezoneOffsetMinutes
	if offsetMinutes != nil {
		offset = *offsetMinutes
	}
	return instant.UTC().Add(time.Duration(offset) * time.Minute)
}

// BusinessDateFor attributes a local instant to a business day. For a
// night shift, events after midnight but at or before the shift's end
// still belong to the previous day, so a 22:00 check-in and a 06:30
// check-out land on the same log.
func BusinessDateFor(local time.Time, shift attendance.ShiftWindow) attendance.BusinessDate {
	date := attendance.BusinessDateOf(local)
	if !shift.CrossesMidnight() {
		return date
	}

	minuteOfDay := local.Hour()*60 + local.Minute()
	if minuteOfDay <= shift.End.Minutes() {
		return date.AddDays(-1)
	}
	return date
}

// shiftStartOn projects the scheduled start onto a business date, in the
// same wall clock as the local check-in time.
func shiftStartOn(date attendance.BusinessDate, shift attendance.ShiftWindow) time.Time {
	d := date.Time()
	return time.Date(d.Year(), d.Month(), d.Day(), shift.Start.Hour, shift.Start.Minute, 0, 0, time.UTC)
}

// shiftEndOn projects the scheduled end onto a business date, rolling to
// the next calendar day for night shifts.
func shiftEndOn(date attendance.BusinessDate, shift attendance.ShiftWindow) time.Time {
	d := date.Time()
	if shift.CrossesMidnight() {
		d = date.AddDays(1).Time()
	}
	return time.Date(d.Year(), d.Month(), d.Day(), shift.End.Hour, shift.End.Minute, 0, 0, time.UTC)
}
