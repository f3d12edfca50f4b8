package repositories

import (
	"context"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
)

// AuditRepository is the append-only audit trail store.
type AuditRepository interface {
	AppendAudit(ctx context.Context, record domain.AuditRecord) error
	// ListAudit returns the latest limit records, newest first.
	ListAudit(ctx context.Context, limit int) ([]domain.AuditRecord, error)
}
