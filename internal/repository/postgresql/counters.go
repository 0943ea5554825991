package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/database"
)

type counterRepository struct {
	db *database.DB
}

func NewCounterRepository(db *database.DB) attendance.CounterRepository {
	return &counterRepository{db: db}
}

// applyLifetimeDelta upserts the lifetime row and applies a signed
// delta, flooring every counter at zero.
func (r *counterRepository) applyLifetimeDelta(ctx context.Context, employeeID string, d attendance.CounterDelta) error {
	if d.IsZero() {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_counters (
			id, employee_id, present_days, absent_days, late_days, leave_days,
			remote_days, quarterly_leaves, monthly_lates, half_days
		) VALUES (
			$1, $2, GREATEST($3, 0), GREATEST($4, 0), GREATEST($5, 0), GREATEST($6, 0),
			0, GREATEST($7, 0), GREATEST($8, 0), GREATEST($9, 0)
		)
		ON CONFLICT (employee_id) DO UPDATE SET
			present_days     = GREATEST(attendance_counters.present_days + $3, 0),
			absent_days      = GREATEST(attendance_counters.absent_days + $4, 0),
			late_days        = GREATEST(attendance_counters.late_days + $5, 0),
			leave_days       = GREATEST(attendance_counters.leave_days + $6, 0),
			quarterly_leaves = GREATEST(attendance_counters.quarterly_leaves + $7, 0),
			monthly_lates    = GREATEST(attendance_counters.monthly_lates + $8, 0),
			half_days        = GREATEST(attendance_counters.half_days + $9, 0),
			updated_at       = now()
	`

	_, err := q.Exec(ctx, query,
		uuid.NewString(), employeeID,
		d.PresentDays, d.AbsentDays, d.LateDays, d.LeaveDays,
		d.QuarterlyLeaves, d.MonthlyLates, d.HalfDays,
	)
	if err != nil {
		return fmt.Errorf("failed to apply lifetime counter delta: %w", err)
	}
	return nil
}

// applyMonthlyDelta upserts the (employee, month) summary row and
// applies a signed delta, flooring every counter at zero.
func (r *counterRepository) applyMonthlyDelta(ctx context.Context, employeeID string, month attendance.Month, d attendance.CounterDelta) error {
	if d.IsZero() {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_attendance_summaries (
			id, employee_id, month, present_days, absent_days, late_days,
			leave_days, remote_days, half_days
		) VALUES (
			$1, $2, $3, GREATEST($4, 0), GREATEST($5, 0), GREATEST($6, 0),
			GREATEST($7, 0), 0, GREATEST($8, 0)
		)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			present_days = GREATEST(monthly_attendance_summaries.present_days + $4, 0),
			absent_days  = GREATEST(monthly_attendance_summaries.absent_days + $5, 0),
			late_days    = GREATEST(monthly_attendance_summaries.late_days + $6, 0),
			leave_days   = GREATEST(monthly_attendance_summaries.leave_days + $7, 0),
			half_days    = GREATEST(monthly_attendance_summaries.half_days + $8, 0),
			updated_at   = now()
	`

	_, err := q.Exec(ctx, query,
		uuid.NewString(), employeeID, month.String(),
		d.PresentDays, d.AbsentDays, d.LateDays, d.LeaveDays, d.HalfDays,
	)
	if err != nil {
		return fmt.Errorf("failed to apply monthly counter delta: %w", err)
	}
	return nil
}

// ApplyTransition implements attendance.CounterRepository.
func (r *counterRepository) ApplyTransition(ctx context.Context, employeeID string, from, to attendance.Status, month attendance.Month) error {
	lifetime, monthly := attendance.TransitionDelta(from, to)
	if err := r.applyLifetimeDelta(ctx, employeeID, lifetime); err != nil {
		return err
	}
	return r.applyMonthlyDelta(ctx, employeeID, month, monthly)
}

// ReverseIncident implements attendance.CounterRepository.
func (r *counterRepository) ReverseIncident(ctx context.Context, employeeID string, kind attendance.Status, month attendance.Month) error {
	lifetime, monthly := attendance.IncidentReversalDelta(kind)
	if err := r.applyLifetimeDelta(ctx, employeeID, lifetime); err != nil {
		return err
	}
	return r.applyMonthlyDelta(ctx, employeeID, month, monthly)
}

// AdjustQuarterlyLeaves implements attendance.CounterRepository.
func (r *counterRepository) AdjustQuarterlyLeaves(ctx context.Context, employeeID string, delta int) error {
	return r.applyLifetimeDelta(ctx, employeeID, attendance.CounterDelta{QuarterlyLeaves: delta})
}

// ResetMonthlyLates implements attendance.CounterRepository. Touching
// only rows with a nonzero credit keeps repeated runs on the first of
// the month from churning updated_at.
func (r *counterRepository) ResetMonthlyLates(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_counters
		SET monthly_lates = 0, updated_at = now()
		WHERE monthly_lates > 0
	`

	if _, err := q.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to reset monthly lates: %w", err)
	}
	return nil
}

const lifetimeColumns = `id, employee_id, present_days, absent_days, late_days, leave_days,
	   remote_days, quarterly_leaves, monthly_lates, half_days, created_at, updated_at`

func scanLifetime(row pgx.Row) (attendance.LifetimeCounters, error) {
	var c attendance.LifetimeCounters
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.PresentDays, &c.AbsentDays, &c.LateDays, &c.LeaveDays,
		&c.RemoteDays, &c.QuarterlyLeaves, &c.MonthlyLates, &c.HalfDays, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// GetLifetime implements attendance.CounterRepository.
func (r *counterRepository) GetLifetime(ctx context.Context, employeeID string) (attendance.LifetimeCounters, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + lifetimeColumns + `
		FROM attendance_counters
		WHERE employee_id = $1
	`

	c, err := scanLifetime(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lazy rows: an employee with no mutations yet reads as all zeros.
			return attendance.LifetimeCounters{EmployeeID: employeeID}, nil
		}
		return attendance.LifetimeCounters{}, fmt.Errorf("failed to get lifetime counters: %w", err)
	}

	return c, nil
}

// ListLifetime implements attendance.CounterRepository.
func (r *counterRepository) ListLifetime(ctx context.Context) ([]attendance.LifetimeCounters, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + lifetimeColumns + `
		FROM attendance_counters
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list lifetime counters: %w", err)
	}
	defer rows.Close()

	var result []attendance.LifetimeCounters
	for rows.Next() {
		c, err := scanLifetime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lifetime counters: %w", err)
		}
		result = append(result, c)
	}

	return result, rows.Err()
}

const monthlyColumns = `id, employee_id, month, present_days, absent_days, late_days,
	   leave_days, remote_days, half_days, created_at, updated_at`

func scanMonthly(row pgx.Row) (attendance.MonthlySummary, error) {
	var s attendance.MonthlySummary
	var month string
	err := row.Scan(
		&s.ID, &s.EmployeeID, &month, &s.PresentDays, &s.AbsentDays, &s.LateDays,
		&s.LeaveDays, &s.RemoteDays, &s.HalfDays, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return attendance.MonthlySummary{}, err
	}
	s.Month, err = attendance.ParseMonth(month)
	return s, err
}

// GetMonthly implements attendance.CounterRepository.
func (r *counterRepository) GetMonthly(ctx context.Context, employeeID string, month attendance.Month) (attendance.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + monthlyColumns + `
		FROM monthly_attendance_summaries
		WHERE employee_id = $1 AND month = $2
	`

	s, err := scanMonthly(q.QueryRow(ctx, query, employeeID, month.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.MonthlySummary{EmployeeID: employeeID, Month: month}, nil
		}
		return attendance.MonthlySummary{}, fmt.Errorf("failed to get monthly summary: %w", err)
	}

	return s, nil
}

// ListMonthly implements attendance.CounterRepository.
func (r *counterRepository) ListMonthly(ctx context.Context, month attendance.Month) ([]attendance.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + monthlyColumns + `
		FROM monthly_attendance_summaries
		WHERE month = $1
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, month.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly summaries: %w", err)
	}
	defer rows.Close()

	var result []attendance.MonthlySummary
	for rows.Next() {
		s, err := scanMonthly(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly summary: %w", err)
		}
		result = append(result, s)
	}

	return result, rows.Err()
}
