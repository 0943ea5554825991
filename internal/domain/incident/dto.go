package incident

import (
	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/validator"
)

// SubmitReasonRequest attaches a justification to the newest open
// incident for (employee, date). EmployeeID comes from the verified
// token.
type SubmitReasonRequest struct {
	EmployeeID string `json:"-"`
	Kind       Kind   `json:"kind"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
}

func (r SubmitReasonRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !r.Kind.Valid() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "kind must be late or half_day"})
	}
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if _, err := attendance.ParseBusinessDate(r.Date); err != nil {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DecisionRequest resolves an incident. ReviewerID comes from the
// verified token.
type DecisionRequest struct {
	IncidentID string       `json:"-"`
	ReviewerID string       `json:"-"`
	Type       DecisionType `json:"type"`
}

func (r DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.IncidentID) {
		errs = append(errs, validator.ValidationError{Field: "incident_id", Message: "incident_id is required"})
	}
	if validator.IsEmpty(r.ReviewerID) {
		errs = append(errs, validator.ValidationError{Field: "reviewer_id", Message: "reviewer_id is required"})
	}
	if !r.Type.Valid() {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be paid or unpaid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter narrows incident listings.
type Filter struct {
	EmployeeID  string
	Kind        Kind
	ActionTaken ActionTaken
}

// Stats summarizes incidents by workflow state and verdict.
type Stats struct {
	Total     int `json:"total"`
	Created   int `json:"created"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Paid      int `json:"paid"`
	Unpaid    int `json:"unpaid"`
}

type Response struct {
	ID              string        `json:"id"`
	EmployeeID      string        `json:"employee_id"`
	Date            string        `json:"date"`
	Kind            Kind          `json:"kind"`
	ScheduledTimeIn string        `json:"scheduled_time_in"`
	ActualTimeIn    string        `json:"actual_time_in"`
	MinutesLate     int           `json:"minutes_late"`
	Reason          *string       `json:"reason,omitempty"`
	ActionTaken     ActionTaken   `json:"action_taken"`
	Type            *DecisionType `json:"type,omitempty"`
	Justified       *bool         `json:"justified,omitempty"`
	ReviewedBy      *string       `json:"reviewed_by,omitempty"`
}
