package leave

import (
	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/validator"
)

var leaveTypes = []string{"annual", "sick", "casual", "unpaid"}

// CreateRequest files a new leave application.
type CreateRequest struct {
	EmployeeID string `json:"-"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !validator.IsInSlice(r.LeaveType, leaveTypes) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "unknown leave type"})
	}

	start, startErr := attendance.ParseBusinessDate(r.StartDate)
	if startErr != nil {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	end, endErr := attendance.ParseBusinessDate(r.EndDate)
	if endErr != nil {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReviewRequest approves or rejects a pending leave request.
// ReviewerID comes from the verified token.
type ReviewRequest struct {
	LeaveID    string  `json:"-"`
	ReviewerID string  `json:"-"`
	Comment    *string `json:"comment,omitempty"`
}

func (r ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveID) {
		errs = append(errs, validator.ValidationError{Field: "leave_id", Message: "leave_id is required"})
	}
	if validator.IsEmpty(r.ReviewerID) {
		errs = append(errs, validator.ValidationError{Field: "reviewer_id", Message: "reviewer_id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter narrows leave listings.
type Filter struct {
	EmployeeID string
	Status     RequestStatus
}

type Response struct {
	ID         string        `json:"id"`
	EmployeeID string        `json:"employee_id"`
	LeaveType  string        `json:"leave_type"`
	StartDate  string        `json:"start_date"`
	EndDate    string        `json:"end_date"`
	TotalDays  int           `json:"total_days"`
	Reason     string        `json:"reason"`
	Status     RequestStatus `json:"status"`
	ReviewedBy *string       `json:"reviewed_by,omitempty"`
	Comment    *string       `json:"comment,omitempty"`
}
