package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// DefaultAuditTrailLimit is the number of audit records listed when no limit is given.
const DefaultAuditTrailLimit = 100

// AnalyticsClient receives product events; *utils.PosthogClientWrapper satisfies it.
type AnalyticsClient interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

type auditService struct {
	BaseService
	repo      portsrepo.AuditRepository
	analytics AnalyticsClient
	timeout   time.Duration
	wg        sync.WaitGroup
}

// NewAuditService creates the best-effort audit sink. Records are written in the background
// after the caller's unit of work has committed; failures are only logged.
func NewAuditService(repo portsrepo.AuditRepository, analytics AnalyticsClient, timeout time.Duration) portssvc.AuditSvcFacade {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &auditService{repo: repo, analytics: analytics, timeout: timeout}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) Record(ctx context.Context, caller domain.Caller, action domain.AuditAction, entity, entityID, description string) {
	record := domain.AuditRecord{
		AuditID:     uuid.NewString(),
		UserID:      caller.UserID,
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
		Description: description,
		CreatedAt:   s.now(),
	}
	logger := s.GetLogger(ctx)
	// The request may finish before the write does; keep its values but not its cancellation.
	bgCtx := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		writeCtx, cancel := context.WithTimeout(bgCtx, s.timeout)
		defer cancel()

		if err := s.repo.AppendAudit(writeCtx, record); err != nil {
			logger.Warn("Failed to record audit trail",
				slog.String("error", err.Error()),
				slog.String("entity", entity),
				slog.String("entity_id", entityID))
		}
		if s.analytics != nil {
			s.analytics.Enqueue(caller.UserID, "audit_"+strings.ToLower(string(action))+"_"+entity, map[string]any{
				"entity_id": entityID,
				"role":      string(caller.Role),
			})
		}
	}()
}

func (s *auditService) ListAuditTrail(ctx context.Context, limit int) ([]domain.AuditRecord, error) {
	if limit <= 0 {
		limit = DefaultAuditTrailLimit
	}
	records, err := s.repo.ListAudit(ctx, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit trail")
		return nil, err
	}
	return records, nil
}

// Close waits for pending audit writes.
func (s *auditService) Close() {
	s.wg.Wait()
}
