package response

import (
	"errors"
	"net/http"

	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/domain/employee"
	"github.com/umairahsan10/crm-backend-go/internal/domain/incident"
	"github.com/umairahsan10/crm-backend-go/internal/domain/leave"
	"github.com/umairahsan10/crm-backend-go/internal/domain/policy"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is not active", nil)
	case errors.Is(err, employee.ErrNoShiftAssigned):
		BadRequest(w, "Employee has no shift assigned", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrDuplicateCheckin):
		Conflict(w, "Already checked in for this business day")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No check-in found for this business day")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out for this business day")
	case errors.Is(err, attendance.ErrDateInFuture):
		BadRequest(w, "Date must not be in the future", nil)
	case errors.Is(err, attendance.ErrLogNotFound):
		NotFound(w, "Attendance log not found")

	// Incident domain errors
	case errors.Is(err, incident.ErrIncidentNotFound):
		NotFound(w, "Incident not found")
	case errors.Is(err, incident.ErrNoOpenIncident):
		NotFound(w, "No open incident found for this date, check in first")
	case errors.Is(err, incident.ErrAlreadyProcessed):
		Conflict(w, "Incident has already been decided")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrOverlap):
		Conflict(w, "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Policy errors are fatal for the operation, not the caller's fault
	case errors.Is(err, policy.ErrPolicyNotFound):
		InternalServerError(w, "Company attendance policy is not configured")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
