package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/domain/incident"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/database"
)

type incidentRepository struct {
	db *database.DB
}

func NewIncidentRepository(db *database.DB) incident.Repository {
	return &incidentRepository{db: db}
}

const incidentColumns = `id, employee_id, date, kind, scheduled_time_in, actual_time_in,
	   minutes_late, reason, action_taken, type, justified, reviewed_by, created_at, updated_at`

func scanIncident(row pgx.Row) (incident.Incident, error) {
	var inc incident.Incident
	var date time.Time
	err := row.Scan(
		&inc.ID, &inc.EmployeeID, &date, &inc.Kind, &inc.ScheduledTimeIn, &inc.ActualTimeIn,
		&inc.MinutesLate, &inc.Reason, &inc.ActionTaken, &inc.Type, &inc.Justified, &inc.ReviewedBy,
		&inc.CreatedAt, &inc.UpdatedAt,
	)
	if err != nil {
		return incident.Incident{}, err
	}
	inc.Date = attendance.BusinessDateOf(date)
	return inc, nil
}

// Create implements incident.Repository.
func (r *incidentRepository) Create(ctx context.Context, inc incident.Incident) (incident.Incident, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_incidents (
			id, employee_id, date, kind, scheduled_time_in, actual_time_in,
			minutes_late, reason, action_taken, type, justified, reviewed_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	inc.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		inc.ID, inc.EmployeeID, inc.Date.Time(), inc.Kind, inc.ScheduledTimeIn, inc.ActualTimeIn,
		inc.MinutesLate, inc.Reason, inc.ActionTaken, inc.Type, inc.Justified, inc.ReviewedBy,
	).Scan(&inc.CreatedAt, &inc.UpdatedAt)
	if err != nil {
		return incident.Incident{}, fmt.Errorf("failed to create incident: %w", err)
	}

	return inc, nil
}

// GetByID implements incident.Repository.
func (r *incidentRepository) GetByID(ctx context.Context, id string) (incident.Incident, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + incidentColumns + `
		FROM attendance_incidents
		WHERE id = $1
	`

	inc, err := scanIncident(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return incident.Incident{}, incident.ErrIncidentNotFound
		}
		return incident.Incident{}, fmt.Errorf("failed to get incident: %w", err)
	}

	return inc, nil
}

// GetLatestOpen implements incident.Repository.
func (r *incidentRepository) GetLatestOpen(ctx context.Context, employeeID string, kind incident.Kind, date attendance.BusinessDate) (*incident.Incident, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + incidentColumns + `
		FROM attendance_incidents
		WHERE employee_id = $1
		  AND kind = $2
		  AND date = $3
		  AND action_taken = $4
		ORDER BY created_at DESC
		LIMIT 1
	`

	inc, err := scanIncident(q.QueryRow(ctx, query, employeeID, kind, date.Time(), incident.ActionCreated))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open incident: %w", err)
	}

	return &inc, nil
}

// Update implements incident.Repository. Completed incidents are
// immutable: the guard makes a concurrent second decision lose the race
// at the row instead of double-applying its side effects.
func (r *incidentRepository) Update(ctx context.Context, inc incident.Incident) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_incidents
		SET reason = $2, action_taken = $3, type = $4, justified = $5,
		    reviewed_by = $6, updated_at = now()
		WHERE id = $1 AND action_taken <> $7
	`

	tag, err := q.Exec(ctx, query,
		inc.ID, inc.Reason, inc.ActionTaken, inc.Type, inc.Justified, inc.ReviewedBy,
		incident.ActionCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to update incident: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return incident.ErrAlreadyProcessed
	}

	return nil
}

// List implements incident.Repository.
func (r *incidentRepository) List(ctx context.Context, filter incident.Filter) ([]incident.Incident, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + incidentColumns + `
		FROM attendance_incidents
		WHERE 1=1
	`
	var args []interface{}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if filter.ActionTaken != "" {
		args = append(args, filter.ActionTaken)
		query += fmt.Sprintf(" AND action_taken = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	var result []incident.Incident
	for rows.Next() {
		inc, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		result = append(result, inc)
	}

	return result, rows.Err()
}

// Stats implements incident.Repository.
func (r *incidentRepository) Stats(ctx context.Context, filter incident.Filter) (incident.Stats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE action_taken = 'created'),
			COUNT(*) FILTER (WHERE action_taken = 'pending'),
			COUNT(*) FILTER (WHERE action_taken = 'completed'),
			COUNT(*) FILTER (WHERE type = 'paid'),
			COUNT(*) FILTER (WHERE type = 'unpaid')
		FROM attendance_incidents
		WHERE 1=1
	`
	var args []interface{}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}

	var s incident.Stats
	err := q.QueryRow(ctx, query, args...).Scan(
		&s.Total, &s.Created, &s.Pending, &s.Completed, &s.Paid, &s.Unpaid,
	)
	if err != nil {
		return incident.Stats{}, fmt.Errorf("failed to count incidents: %w", err)
	}

	return s, nil
}
