package memory

import (
	"context"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
)

func (s *Store) AppendAudit(ctx context.Context, record domain.AuditRecord) error {
	return s.write(ctx, func(d *dataset) error {
		d.audit = append(d.audit, record)
		return nil
	})
}

func (s *Store) ListAudit(ctx context.Context, limit int) ([]domain.AuditRecord, error) {
	var out []domain.AuditRecord
	err := s.read(ctx, func(d *dataset) error {
		n := len(d.audit)
		if limit <= 0 || limit > n {
			limit = n
		}
		out = make([]domain.AuditRecord, 0, limit)
		for i := n - 1; i >= n-limit; i-- {
			out = append(out, d.audit[i])
		}
		return nil
	})
	return out, err
}
