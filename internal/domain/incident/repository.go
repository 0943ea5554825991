package incident

import (
	"context"

	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
)

// Repository defines data access for justification incidents.
type Repository interface {
	Create(ctx context.Context, inc Incident) (Incident, error)

	GetByID(ctx context.Context, id string) (Incident, error)

	// GetLatestOpen returns the newest incident still in its created
	// state for (employee, date); nil when there is none
	GetLatestOpen(ctx context.Context, employeeID string, kind Kind, date attendance.BusinessDate) (*Incident, error)

	Update(ctx context.Context, inc Incident) error

	List(ctx context.Context, filter Filter) ([]Incident, error)

	// Stats counts incidents by workflow state and paid/unpaid verdict
	Stats(ctx context.Context, filter Filter) (Stats, error)
}
