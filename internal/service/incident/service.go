package incident

import (
	"context"

	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/domain/incident"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/database"
)

type incidentService struct {
	tx           database.Transactor
	incidentRepo incident.Repository
	counterRepo  attendance.CounterRepository
}

func NewIncidentService(
	tx database.Transactor,
	incidentRepo incident.Repository,
	counterRepo attendance.CounterRepository,
) incident.Service {
	return &incidentService{
		tx:           tx,
		incidentRepo: incidentRepo,
		counterRepo:  counterRepo,
	}
}

// SubmitReason implements incident.Service. Only the newest incident
// still in its created state accepts a reason; older entries for the
// same day stay untouched as history.
func (s *incidentService) SubmitReason(ctx context.Context, req incident.SubmitReasonRequest) (incident.Response, error) {
	if err := req.Validate(); err != nil {
		return incident.Response{}, err
	}

	date, err := attendance.ParseBusinessDate(req.Date)
	if err != nil {
		return incident.Response{}, err
	}

	inc, err := s.incidentRepo.GetLatestOpen(ctx, req.EmployeeID, req.Kind, date)
	if err != nil {
		return incident.Response{}, err
	}
	if inc == nil {
		return incident.Response{}, incident.ErrNoOpenIncident
	}

	inc.Reason = &req.Reason
	inc.ActionTaken = incident.ActionPending
	inc.Type = nil
	inc.Justified = nil

	if err := s.incidentRepo.Update(ctx, *inc); err != nil {
		return incident.Response{}, err
	}

	return mapIncidentToResponse(*inc), nil
}

// Decide implements incident.Service. A paid decision reverses the
// incident's counters against the month the incident happened in, not
// the month the decision is made. The read and the already-completed
// guard run inside the unit of work, so two concurrent decisions cannot
// both pass the guard and double-apply the reversal.
func (s *incidentService) Decide(ctx context.Context, req incident.DecisionRequest) (incident.Response, error) {
	if err := req.Validate(); err != nil {
		return incident.Response{}, err
	}

	var inc incident.Incident
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		inc, err = s.incidentRepo.GetByID(txCtx, req.IncidentID)
		if err != nil {
			return err
		}
		if inc.ActionTaken == incident.ActionCompleted {
			return incident.ErrAlreadyProcessed
		}

		justified := req.Type == incident.DecisionPaid
		inc.ActionTaken = incident.ActionCompleted
		inc.Type = &req.Type
		inc.Justified = &justified
		inc.ReviewedBy = &req.ReviewerID

		if err := s.incidentRepo.Update(txCtx, inc); err != nil {
			return err
		}
		if justified {
			return s.counterRepo.ReverseIncident(txCtx, inc.EmployeeID, inc.Kind.CounterStatus(), inc.Date.Month())
		}
		return nil
	})
	if err != nil {
		return incident.Response{}, err
	}

	return mapIncidentToResponse(inc), nil
}

// List implements incident.Service.
func (s *incidentService) List(ctx context.Context, filter incident.Filter) ([]incident.Response, error) {
	incidents, err := s.incidentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]incident.Response, 0, len(incidents))
	for _, inc := range incidents {
		result = append(result, mapIncidentToResponse(inc))
	}
	return result, nil
}

// GetStats implements incident.Service.
func (s *incidentService) GetStats(ctx context.Context, filter incident.Filter) (incident.Stats, error) {
	return s.incidentRepo.Stats(ctx, filter)
}

func mapIncidentToResponse(inc incident.Incident) incident.Response {
	return incident.Response{
		ID:              inc.ID,
		EmployeeID:      inc.EmployeeID,
		Date:            inc.Date.String(),
		Kind:            inc.Kind,
		ScheduledTimeIn: inc.ScheduledTimeIn,
		ActualTimeIn:    inc.ActualTimeIn,
		MinutesLate:     inc.MinutesLate,
		Reason:          inc.Reason,
		ActionTaken:     inc.ActionTaken,
		Type:            inc.Type,
		Justified:       inc.Justified,
		ReviewedBy:      inc.ReviewedBy,
	}
}
