package pgsql

import (
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     &BaseRepository{Pool: dbPool},
		AccountRepo:   newPgxAccountRepository(dbPool),
		CustomerRepo:  newPgxCustomerRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		RevenueRepo:   newPgxRevenueRepository(dbPool),
		AuditRepo:     newPgxAuditRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
