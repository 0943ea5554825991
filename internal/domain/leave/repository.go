package leave

import (
	"context"

	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
)

// Repository defines data access for leave requests.
type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)

	GetByID(ctx context.Context, id string) (Request, error)

	Update(ctx context.Context, req Request) error

	// HasOverlap reports whether any pending or approved request for
	// the employee intersects [start, end]
	HasOverlap(ctx context.Context, employeeID string, start, end attendance.BusinessDate) (bool, error)

	// HasApprovedLeaveOn reports whether an approved request covers the
	// given date
	HasApprovedLeaveOn(ctx context.Context, employeeID string, date attendance.BusinessDate) (bool, error)

	List(ctx context.Context, filter Filter) ([]Request, error)
}
