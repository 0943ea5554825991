package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/umairahsan10/crm-backend-go/internal/domain/attendance"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/database"
)

type dailyLogRepository struct {
	db *database.DB
}

func NewDailyLogRepository(db *database.DB) attendance.DailyLogRepository {
	return &dailyLogRepository{db: db}
}

const dailyLogColumns = `id, employee_id, date, checkin, checkout, mode, status, created_at, updated_at`

func scanDailyLog(row pgx.Row) (attendance.DailyLog, error) {
	var log attendance.DailyLog
	var date time.Time
	err := row.Scan(
		&log.ID, &log.EmployeeID, &date, &log.Checkin, &log.Checkout,
		&log.Mode, &log.Status, &log.CreatedAt, &log.UpdatedAt,
	)
	if err != nil {
		return attendance.DailyLog{}, err
	}
	log.Date = attendance.BusinessDateOf(date)
	return log, nil
}

// Create implements attendance.DailyLogRepository.
func (r *dailyLogRepository) Create(ctx context.Context, log attendance.DailyLog) (attendance.DailyLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_logs (id, employee_id, date, checkin, checkout, mode, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	log.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		log.ID, log.EmployeeID, log.Date.Time(), log.Checkin, log.Checkout, log.Mode, log.Status,
	).Scan(&log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		return attendance.DailyLog{}, fmt.Errorf("failed to create attendance log: %w", err)
	}

	return log, nil
}

// GetByEmployeeAndDate implements attendance.DailyLogRepository.
func (r *dailyLogRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date attendance.BusinessDate) (*attendance.DailyLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dailyLogColumns + `
		FROM attendance_logs
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	log, err := scanDailyLog(q.QueryRow(ctx, query, employeeID, date.Time()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance log: %w", err)
	}

	return &log, nil
}

// Upsert implements attendance.DailyLogRepository.
func (r *dailyLogRepository) Upsert(ctx context.Context, log attendance.DailyLog) (attendance.DailyLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_logs (id, employee_id, date, checkin, checkout, mode, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			checkin    = EXCLUDED.checkin,
			checkout   = EXCLUDED.checkout,
			mode       = EXCLUDED.mode,
			status     = EXCLUDED.status,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		uuid.NewString(), log.EmployeeID, log.Date.Time(), log.Checkin, log.Checkout, log.Mode, log.Status,
	).Scan(&log.ID, &log.CreatedAt, &log.UpdatedAt)
	if err != nil {
		return attendance.DailyLog{}, fmt.Errorf("failed to upsert attendance log: %w", err)
	}

	return log, nil
}

// SetCheckout implements attendance.DailyLogRepository.
func (r *dailyLogRepository) SetCheckout(ctx context.Context, id string, checkout time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_logs
		SET checkout = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, checkout)
	if err != nil {
		return fmt.Errorf("failed to set checkout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrLogNotFound
	}

	return nil
}

// ExistsForDate implements attendance.DailyLogRepository.
func (r *dailyLogRepository) ExistsForDate(ctx context.Context, employeeID string, date attendance.BusinessDate) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_logs
			WHERE employee_id = $1 AND date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date.Time()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance log existence: %w", err)
	}

	return exists, nil
}

// ListUncheckedOut implements attendance.DailyLogRepository.
func (r *dailyLogRepository) ListUncheckedOut(ctx context.Context, cutoff attendance.BusinessDate) ([]attendance.DailyLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dailyLogColumns + `
		FROM attendance_logs
		WHERE date <= $1
		  AND checkin IS NOT NULL
		  AND checkout IS NULL
		ORDER BY date, employee_id
	`

	rows, err := q.Query(ctx, query, cutoff.Time())
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance logs: %w", err)
	}
	defer rows.Close()

	var logs []attendance.DailyLog
	for rows.Next() {
		log, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// List implements attendance.DailyLogRepository.
func (r *dailyLogRepository) List(ctx context.Context, filter attendance.LogsFilter) ([]attendance.DailyLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + dailyLogColumns + `
		FROM attendance_logs
		WHERE date >= $1 AND date <= $2
	`
	args := []interface{}{filter.From.Time(), filter.To.Time()}

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Status != attendance.StatusNone {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY date DESC, employee_id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance logs: %w", err)
	}
	defer rows.Close()

	var logs []attendance.DailyLog
	for rows.Next() {
		log, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}
