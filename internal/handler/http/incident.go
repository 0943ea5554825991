package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/umairahsan10/crm-backend-go/internal/domain/incident"
	"github.com/umairahsan10/crm-backend-go/internal/handler/http/response"
)

type IncidentHandler interface {
	SubmitReason(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type incidentHandlerImpl struct {
	incidentService incident.Service
}

func NewIncidentHandler(incidentService incident.Service) IncidentHandler {
	return &incidentHandlerImpl{
		incidentService: incidentService,
	}
}

// SubmitReason implements IncidentHandler.
func (h *incidentHandlerImpl) SubmitReason(w http.ResponseWriter, r *http.Request) {
	var req incident.SubmitReasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeIDFromToken(r)

	result, err := h.incidentService.SubmitReason(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reason submitted", result)
}

// Decide implements IncidentHandler.
func (h *incidentHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req incident.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.IncidentID = chi.URLParam(r, "incidentID")
	req.ReviewerID = employeeIDFromToken(r)

	result, err := h.incidentService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Incident decided", result)
}

// List implements IncidentHandler.
func (h *incidentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := incident.Filter{
		EmployeeID:  r.URL.Query().Get("employee_id"),
		Kind:        incident.Kind(r.URL.Query().Get("kind")),
		ActionTaken: incident.ActionTaken(r.URL.Query().Get("action_taken")),
	}

	result, err := h.incidentService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Stats implements IncidentHandler.
func (h *incidentHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	filter := incident.Filter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Kind:       incident.Kind(r.URL.Query().Get("kind")),
	}

	result, err := h.incidentService.GetStats(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
