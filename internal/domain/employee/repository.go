package employee

import "context"

// Repository is the read-only view of the employee directory.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActive returns all active employees, including those without
	// an assigned shift
	ListActive(ctx context.Context) ([]Employee, error)
}
