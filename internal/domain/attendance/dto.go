package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/validator"
)

// CheckinRequest carries a check-in event. EmployeeID comes from the
// verified token, never from the body. Timestamp is the client-reported
// instant (RFC3339); the server clock is used when it is absent.
type CheckinRequest struct {
	EmployeeID            string `json:"-"`
	Timestamp             string `json:"timestamp,omitempty"`
	TimezoneOffsetMinutes *int   `json:"timezone_offset_minutes,omitempty"`
	Mode                  string `json:"mode,omitempty"`
}

func (r CheckinRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.Timestamp != "" {
		if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp must be RFC3339"})
		}
	}
	if r.TimezoneOffsetMinutes != nil && !validator.IsValidTimezoneOffset(*r.TimezoneOffsetMinutes) {
		errs = append(errs, validator.ValidationError{Field: "timezone_offset_minutes", Message: "offset must be between -720 and 840"})
	}
	if r.Mode != "" && !validator.IsInSlice(r.Mode, []string{string(ModeOnsite), string(ModeRemote)}) {
		errs = append(errs, validator.ValidationError{Field: "mode", Message: "mode must be onsite or remote"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckinResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	Date           string `json:"date"`
	Status         Status `json:"status"`
	CheckinAt      string `json:"checkin_at"`
	MinutesLate    int    `json:"minutes_late"`
	RequiresReason bool   `json:"requires_reason"`
}

type CheckoutRequest struct {
	EmployeeID            string `json:"-"`
	Timestamp             string `json:"timestamp,omitempty"`
	TimezoneOffsetMinutes *int   `json:"timezone_offset_minutes,omitempty"`
}

func (r CheckoutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.Timestamp != "" {
		if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "timestamp must be RFC3339"})
		}
	}
	if r.TimezoneOffsetMinutes != nil && !validator.IsValidTimezoneOffset(*r.TimezoneOffsetMinutes) {
		errs = append(errs, validator.ValidationError{Field: "timezone_offset_minutes", Message: "offset must be between -720 and 840"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckoutResponse struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"`
	CheckoutAt string          `json:"checkout_at"`
	TotalHours decimal.Decimal `json:"total_hours"`
}

// LogsQuery is the raw query-string form of a log listing request.
type LogsQuery struct {
	EmployeeID string
	StartDate  string
	EndDate    string
	Status     string
}

// LogsFilter is the parsed filter applied by the repository. A zero
// From/To pair means the service default window (last three months).
type LogsFilter struct {
	EmployeeID string
	From       BusinessDate
	To         BusinessDate
	Status     Status
}

func (q LogsQuery) Validate() (LogsFilter, error) {
	var errs validator.ValidationErrors
	var f LogsFilter

	f.EmployeeID = q.EmployeeID

	if q.StartDate != "" {
		d, err := ParseBusinessDate(q.StartDate)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
		}
		f.From = d
	}
	if q.EndDate != "" {
		d, err := ParseBusinessDate(q.EndDate)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
		}
		f.To = d
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	if q.Status != "" {
		s := Status(q.Status)
		if !s.Valid() {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "unknown status"})
		}
		f.Status = s
	}

	if len(errs) > 0 {
		return LogsFilter{}, errs
	}
	return f, nil
}

type DailyLogResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Checkin    *string `json:"checkin,omitempty"`
	Checkout   *string `json:"checkout,omitempty"`
	Mode       Mode    `json:"mode"`
	Status     Status  `json:"status"`
}

// BulkMarkPresentRequest marks every active employee present for a past
// date. ActorID comes from the verified token; the reason is optional
// and only feeds the audit trail.
type BulkMarkPresentRequest struct {
	Date    string `json:"date"`
	Reason  string `json:"reason,omitempty"`
	ActorID string `json:"-"`
}

func (r BulkMarkPresentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	} else if _, err := ParseBusinessDate(r.Date); err != nil {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkMarkPresentResult struct {
	Date           string `json:"date"`
	TotalEmployees int    `json:"total_employees"`
	MarkedPresent  int    `json:"marked_present"`
	Skipped        int    `json:"skipped"`
	Errors         int    `json:"errors"`
}

type AutoAbsenceResult struct {
	EmployeesChecked int `json:"employees_checked"`
	AbsentMarked     int `json:"absent_marked"`
	LeaveApplied     int `json:"leave_applied"`
}

type AutoCheckoutResult struct {
	OpenLogs   int `json:"open_logs"`
	CheckedOut int `json:"checked_out"`
}
