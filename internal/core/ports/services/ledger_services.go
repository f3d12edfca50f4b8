package services

import (
	"context"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
)

// LedgerSvc derives ledgers and balances from posted journal lines. Nothing is cached.
type LedgerSvc interface {
	ComputeAccountLedger(ctx context.Context, accountID string) (*domain.AccountLedger, error)
	ComputeAllAccountBalances(ctx context.Context) ([]domain.AccountBalance, error)
}
