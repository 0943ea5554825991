package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrDuplicateCheckin  = errors.New("already checked in for this business day")
	ErrNotCheckedIn      = errors.New("no check-in found for this business day")
	ErrAlreadyCheckedOut = errors.New("already checked out for this business day")

	// Correction errors
	ErrDateInFuture = errors.New("date must not be in the future")

	// General errors
	ErrLogNotFound = errors.New("attendance log not found")
)
