package services

import (
	"context"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
)

// AuditSink records who changed what. Record never fails the caller.
type AuditSink interface {
	Record(ctx context.Context, caller domain.Caller, action domain.AuditAction, entity, entityID, description string)
}

// AuditReaderSvc lists the audit trail.
type AuditReaderSvc interface {
	ListAuditTrail(ctx context.Context, limit int) ([]domain.AuditRecord, error)
}

// AuditSvcFacade combines the audit sink and reader.
type AuditSvcFacade interface {
	AuditSink
	AuditReaderSvc
	// Close waits for in-flight records to be written.
	Close()
}
