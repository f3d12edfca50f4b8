package services

import (
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_cycle_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, analytics AnalyticsClient) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Audit first since every writer records into it
	container.Audit = NewAuditService(repos.AuditRepo, analytics, cfg.AuditTimeout)

	container.ChartOfAccounts = NewChartOfAccountsService(repos.AccountRepo, WithAccountAuditSink(container.Audit))
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, container.ChartOfAccounts, repos.TxManager, container.Audit)
	container.Revenue = NewRevenueService(repos.TxManager, repos.RevenueRepo, repos.CustomerRepo, container.Journal, container.Audit)
	container.Ledger = NewLedgerService(repos.AccountRepo, repos.JournalRepo, cfg.BalanceWorkers)
	container.Customer = NewCustomerService(repos.CustomerRepo, container.Audit)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.RevenueRepo)

	return container
}
