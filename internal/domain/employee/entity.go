package employee

import (
	"time"

	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
)

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)

// Employee is the slice of the directory the attendance engine needs.
// The directory itself is owned elsewhere; this engine only reads it.
type Employee struct {
	ID         string
	Name       string
	Status     EmploymentStatus
	ShiftStart *string
	ShiftEnd   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

// ShiftWindow parses the employee's shift strings. ok is false when the
// employee has no schedule assigned.
func (e Employee) ShiftWindow() (attendance.ShiftWindow, bool, error) {
	if e.ShiftStart == nil || e.ShiftEnd == nil {
		return attendance.ShiftWindow{}, false, nil
	}
	w, err := attendance.ParseShiftWindow(*e.ShiftStart, *e.ShiftEnd)
	if err != nil {
		return attendance.ShiftWindow{}, false, err
	}
	return w, true, nil
}
