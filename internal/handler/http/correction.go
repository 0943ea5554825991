package http

import (
	"encoding/json"
	"net/http"

	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/handler/http/response"
)

type CorrectionHandler interface {
	BulkMarkPresent(w http.ResponseWriter, r *http.Request)
	RunAutoAbsence(w http.ResponseWriter, r *http.Request)
	RunAutoCheckout(w http.ResponseWriter, r *http.Request)
}

type correctionHandlerImpl struct {
	correctionService attendance.CorrectionService
}

func NewCorrectionHandler(correctionService attendance.CorrectionService) CorrectionHandler {
	return &correctionHandlerImpl{
		correctionService: correctionService,
	}
}

// BulkMarkPresent implements CorrectionHandler.
func (h *correctionHandlerImpl) BulkMarkPresent(w http.ResponseWriter, r *http.Request) {
	var req attendance.BulkMarkPresentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ActorID = employeeIDFromToken(r)

	result, err := h.correctionService.BulkMarkPresent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk mark present finished", result)
}

// RunAutoAbsence implements CorrectionHandler. Manual trigger for the
// scheduled job, same semantics.
func (h *correctionHandlerImpl) RunAutoAbsence(w http.ResponseWriter, r *http.Request) {
	result, err := h.correctionService.RunAutoAbsence(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Auto-absence run finished", result)
}

// RunAutoCheckout implements CorrectionHandler. Manual trigger for the
// scheduled job, same semantics.
func (h *correctionHandlerImpl) RunAutoCheckout(w http.ResponseWriter, r *http.Request) {
	result, err := h.correctionService.RunAutoCheckout(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Auto-checkout run finished", result)
}
