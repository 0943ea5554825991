package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Checkin(w http.ResponseWriter, r *http.Request)
	Checkout(w http.ResponseWriter, r *http.Request)
	Logs(w http.ResponseWriter, r *http.Request)
	ListLifetime(w http.ResponseWriter, r *http.Request)
	GetLifetime(w http.ResponseWriter, r *http.Request)
	ListMonthly(w http.ResponseWriter, r *http.Request)
	GetMonthly(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Checkin implements AttendanceHandler.
func (h *attendanceHandlerImpl) Checkin(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckinRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EmployeeID = employeeIDFromToken(r)

	result, err := h.attendanceService.Checkin(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in recorded", result)
}

// Checkout implements AttendanceHandler.
func (h *attendanceHandlerImpl) Checkout(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckoutRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EmployeeID = employeeIDFromToken(r)

	result, err := h.attendanceService.Checkout(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out recorded", result)
}

// Logs implements AttendanceHandler.
func (h *attendanceHandlerImpl) Logs(w http.ResponseWriter, r *http.Request) {
	query := attendance.LogsQuery{
		EmployeeID: r.URL.Query().Get("employee_id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		Status:     r.URL.Query().Get("status"),
	}

	filter, err := query.Validate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetLogs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListLifetime implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListLifetime(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListLifetime(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetLifetime implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetLifetime(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.attendanceService.GetLifetime(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// parseMonthParam reads an optional ?month=YYYY-MM query value.
func parseMonthParam(r *http.Request) (attendance.Month, bool) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return attendance.Month{}, true
	}
	month, err := attendance.ParseMonth(raw)
	if err != nil {
		return attendance.Month{}, false
	}
	return month, true
}

// ListMonthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListMonthly(w http.ResponseWriter, r *http.Request) {
	month, ok := parseMonthParam(r)
	if !ok {
		response.BadRequest(w, "month must be YYYY-MM", nil)
		return
	}

	result, err := h.attendanceService.ListMonthly(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	month, ok := parseMonthParam(r)
	if !ok {
		response.BadRequest(w, "month must be YYYY-MM", nil)
		return
	}

	result, err := h.attendanceService.GetMonthly(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
