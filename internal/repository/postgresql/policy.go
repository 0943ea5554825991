package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/umairahsan10/crm-backend-go/internal/domain/policy"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/database"
)

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.Repository {
	return &policyRepository{db: db}
}

// GetThresholds implements policy.Repository. NULL columns fall back to
// the default bands; a missing row does not.
func (r *policyRepository) GetThresholds(ctx context.Context) (policy.Thresholds, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(late_time_minutes, 0),
		       COALESCE(half_time_minutes, 0),
		       COALESCE(absent_time_minutes, 0)
		FROM company_policies
		ORDER BY created_at
		LIMIT 1
	`

	var t policy.Thresholds
	err := q.QueryRow(ctx, query).Scan(&t.LateTimeMinutes, &t.HalfTimeMinutes, &t.AbsentTimeMinutes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.Thresholds{}, policy.ErrPolicyNotFound
		}
		return policy.Thresholds{}, fmt.Errorf("failed to get company policy: %w", err)
	}

	return t.WithDefaults(), nil
}
