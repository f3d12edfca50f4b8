package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	"github.com/SscSPs/revenue_cycle_app/internal/models"
	"github.com/SscSPs/revenue_cycle_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

func (r *PgxAuditRepository) AppendAudit(ctx context.Context, record domain.AuditRecord) error {
	query := `
		INSERT INTO audit_trail (audit_id, user_id, action, entity, entity_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		record.AuditID,
		record.UserID,
		string(record.Action),
		record.Entity,
		record.EntityID,
		record.Description,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}

func (r *PgxAuditRepository) ListAudit(ctx context.Context, limit int) ([]domain.AuditRecord, error) {
	query := `
		SELECT audit_id, user_id, action, entity, entity_id, description, created_at
		FROM audit_trail
		ORDER BY created_at DESC, audit_id DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit trail: %w", err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var m models.AuditRecord
		if err := rows.Scan(&m.AuditID, &m.UserID, &m.Action, &m.Entity, &m.EntityID, &m.Description, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		records = append(records, mapping.ToDomainAuditRecord(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit rows: %w", err)
	}
	return records, nil
}
