package services

import (
	"context"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
)

// ReportingService computes summary figures.
type ReportingService interface {
	GetDashboard(ctx context.Context) (*domain.DashboardSummary, error)
}
