package repositories

import (
	"context"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository exposes aggregate reads over posted journal lines.
type ReportingRepository interface {
	// SumByAccountType returns Σdebit and Σcredit over lines of accounts of the given type.
	SumByAccountType(ctx context.Context, accountType domain.AccountType) (debit, credit decimal.Decimal, err error)

	// SumByAccountCode returns Σdebit and Σcredit over lines of the account with the given code.
	SumByAccountCode(ctx context.Context, code string) (debit, credit decimal.Decimal, err error)
}
