package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/domain/leave"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

const leaveColumns = `id, employee_id, leave_type, start_date, end_date, reason, status,
	   applied_on, reviewed_by, reviewed_on, comment, created_at, updated_at`

func scanLeave(row pgx.Row) (leave.Request, error) {
	var lr leave.Request
	var start, end time.Time
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveType, &start, &end, &lr.Reason, &lr.Status,
		&lr.AppliedOn, &lr.ReviewedBy, &lr.ReviewedOn, &lr.Comment, &lr.CreatedAt, &lr.UpdatedAt,
	)
	if err != nil {
		return leave.Request{}, err
	}
	lr.StartDate = attendance.BusinessDateOf(start)
	lr.EndDate = attendance.BusinessDateOf(end)
	return lr, nil
}

// Create implements leave.Repository.
func (r *leaveRepository) Create(ctx context.Context, lr leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type, start_date, end_date, reason, status, applied_on
		) VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING applied_on, created_at, updated_at
	`

	lr.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		lr.ID, lr.EmployeeID, lr.LeaveType, lr.StartDate.Time(), lr.EndDate.Time(), lr.Reason, lr.Status,
	).Scan(&lr.AppliedOn, &lr.CreatedAt, &lr.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return lr, nil
}

// GetByID implements leave.Repository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE id = $1
	`

	lr, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return lr, nil
}

// Update implements leave.Repository.
func (r *leaveRepository) Update(ctx context.Context, lr leave.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, reviewed_by = $3, reviewed_on = $4, comment = $5, updated_at = now()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, lr.ID, lr.Status, lr.ReviewedBy, lr.ReviewedOn, lr.Comment)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}

	return nil
}

// HasOverlap implements leave.Repository.
func (r *leaveRepository) HasOverlap(ctx context.Context, employeeID string, start, end attendance.BusinessDate) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ($2, $3)
			  AND start_date <= $5
			  AND end_date >= $4
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query,
		employeeID, leave.StatusPending, leave.StatusApproved, start.Time(), end.Time(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}

	return exists, nil
}

// HasApprovedLeaveOn implements leave.Repository.
func (r *leaveRepository) HasApprovedLeaveOn(ctx context.Context, employeeID string, date attendance.BusinessDate) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status = $2
			  AND start_date <= $3
			  AND end_date >= $3
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, leave.StatusApproved, date.Time()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return exists, nil
}

// List implements leave.Repository.
func (r *leaveRepository) List(ctx context.Context, filter leave.Filter) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE 1=1
	`
	var args []interface{}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY applied_on DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var result []leave.Request
	for rows.Next() {
		lr, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		result = append(result, lr)
	}

	return result, rows.Err()
}
