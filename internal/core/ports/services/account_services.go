package services

import (
	"context"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/SscSPs/revenue_cycle_app/internal/dto"
)

// ChartOfAccountsReaderSvc defines read operations over the chart of accounts
type ChartOfAccountsReaderSvc interface {
	// LookupAccountByCode retrieves an account by its unique code; apperrors.ErrNotFound when absent.
	LookupAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountByID retrieves an account by its identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts returns the chart of accounts ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// FixedAccountResolverSvc resolves the accounts the automatic journal recipes post to.
type FixedAccountResolverSvc interface {
	// FixedAccounts returns Cash, Receivable, Sales Revenue and Other Income. A missing
	// account is apperrors.ErrConfiguration.
	FixedAccounts(ctx context.Context) (domain.FixedAccounts, error)
}

// ChartOfAccountsWriterSvc defines administrative changes to the chart of accounts
type ChartOfAccountsWriterSvc interface {
	// CreateAccount adds an account. Only administrators may call it.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, caller domain.Caller) (*domain.Account, error)
}

// ChartOfAccountsSvcFacade combines all chart-of-accounts service interfaces
type ChartOfAccountsSvcFacade interface {
	ChartOfAccountsReaderSvc
	FixedAccountResolverSvc
	ChartOfAccountsWriterSvc
}
