package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/umairahsan10/crm-backend-go/internal/domain/audit"
	"github.com/umairahsan10/crm-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepository{db: db}
}

// Create implements audit.Repository.
func (r *auditRepository) Create(ctx context.Context, entry audit.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO hr_audit_logs (id, actor_id, action, description)
		VALUES ($1, $2, $3, $4)
	`

	_, err := q.Exec(ctx, query, uuid.NewString(), entry.ActorID, entry.Action, entry.Description)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	return nil
}
