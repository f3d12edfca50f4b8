package services

import (
	"context"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

const recentCashRevenueCount = 5

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	revenueRepo   portsrepo.RevenueRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, revenueRepo portsrepo.RevenueRepositoryFacade) portssvc.ReportingService {
	return &reportingService{reportingRepo: reportingRepo, revenueRepo: revenueRepo}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// GetDashboard computes total revenue (credits to REVENUE accounts), outstanding receivables
// and total cash received (debits to Cash), plus the latest cash sales.
func (s *reportingService) GetDashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	summary := &domain.DashboardSummary{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, credit, err := s.reportingRepo.SumByAccountType(gctx, domain.Revenue)
		summary.TotalRevenue = credit
		return err
	})
	g.Go(func() error {
		debit, _, err := s.reportingRepo.SumByAccountCode(gctx, domain.CashAccountCode)
		summary.TotalCashIn = debit
		return err
	})
	g.Go(func() error {
		outstanding, err := s.revenueRepo.SumOutstandingReceivables(gctx)
		summary.OutstandingReceivables = outstanding
		return err
	})
	g.Go(func() error {
		recent, err := s.revenueRepo.ListCashRevenues(gctx, recentCashRevenueCount)
		summary.RecentCashRevenues = recent
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to compute dashboard")
		return nil, err
	}
	return summary, nil
}
