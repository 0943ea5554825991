package leave

import (
	"time"

	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
)

// RequestStatus is the approval state of a leave request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Request is an employee's leave application over an inclusive date
// range. Approving a request whose range already passed backfills the
// attendance logs and counters for every covered day.
type Request struct {
	ID         string
	EmployeeID string
	LeaveType  string
	StartDate  attendance.BusinessDate
	EndDate    attendance.BusinessDate
	Reason     string
	Status     RequestStatus
	AppliedOn  time.Time
	ReviewedBy *string
	ReviewedOn *time.Time
	Comment    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TotalDays is the inclusive length of the leave range.
func (r Request) TotalDays() int {
	return r.StartDate.DaysUntil(r.EndDate)
}
