package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SumByAccountType totals debits and credits posted to all accounts of one type.
func (r *reportingRepository) SumByAccountType(ctx context.Context, accountType domain.AccountType) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(jl.debit), 0), COALESCE(SUM(jl.credit), 0)
		FROM journal_lines jl
		JOIN accounts a ON a.account_id = jl.account_id
		WHERE a.account_type = $1
	`
	var debit, credit decimal.Decimal
	if err := r.db(ctx).QueryRow(ctx, query, string(accountType)).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error summing lines for account type %s: %w", accountType, err)
	}
	return debit, credit, nil
}

// SumByAccountCode totals debits and credits posted to the account with the given code.
func (r *reportingRepository) SumByAccountCode(ctx context.Context, code string) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(jl.debit), 0), COALESCE(SUM(jl.credit), 0)
		FROM journal_lines jl
		JOIN accounts a ON a.account_id = jl.account_id
		WHERE a.code = $1
	`
	var debit, credit decimal.Decimal
	if err := r.db(ctx).QueryRow(ctx, query, code).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error summing lines for account %s: %w", code, err)
	}
	return debit, credit, nil
}
