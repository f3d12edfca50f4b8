package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashRevenueRepository persists cash sales.
type CashRevenueRepository interface {
	SaveCashRevenue(ctx context.Context, revenue domain.CashRevenue) error
	SetCashRevenueJournal(ctx context.Context, cashRevenueID, journalEntryID string) error
	// ListCashRevenues returns the newest cash sales first. limit <= 0 means all.
	ListCashRevenues(ctx context.Context, limit int) ([]domain.CashRevenue, error)
}

// CreditRevenueRepository persists credit sales and their settlement state.
type CreditRevenueRepository interface {
	SaveCreditRevenue(ctx context.Context, revenue domain.CreditRevenue) error
	SetCreditRevenueJournal(ctx context.Context, creditRevenueID, journalEntryID string) error
	FindCreditRevenueByID(ctx context.Context, creditRevenueID string) (*domain.CreditRevenue, error)

	// FindCreditRevenueForUpdate reads the credit sale and locks it until the surrounding
	// unit of work ends.
	FindCreditRevenueForUpdate(ctx context.Context, creditRevenueID string) (*domain.CreditRevenue, error)

	// UpdateCreditRevenuePayment stores the new paid amount and status when the stored version
	// still equals expectedVersion, bumping the version. Otherwise it returns apperrors.ErrConcurrency.
	UpdateCreditRevenuePayment(ctx context.Context, creditRevenueID string, expectedVersion int,
		paidAmount decimal.Decimal, status domain.ReceivableStatus, userID string, now time.Time) error

	// ListCreditRevenues returns the newest credit sales first, each with its payments.
	ListCreditRevenues(ctx context.Context) ([]domain.CreditRevenue, error)

	// SumOutstandingReceivables returns Σ(amount - paid) over credit sales that are not PAID.
	SumOutstandingReceivables(ctx context.Context) (decimal.Decimal, error)
}

// ReceivablePaymentRepository persists collections against credit sales.
type ReceivablePaymentRepository interface {
	SaveReceivablePayment(ctx context.Context, payment domain.ReceivablePayment) error
	SetReceivablePaymentJournal(ctx context.Context, paymentID, journalEntryID string) error
	ListReceivablePayments(ctx context.Context) ([]domain.ReceivablePayment, error)
}

// OtherIncomeRepository persists miscellaneous income.
type OtherIncomeRepository interface {
	SaveOtherIncome(ctx context.Context, income domain.OtherIncome) error
	SetOtherIncomeJournal(ctx context.Context, otherIncomeID, journalEntryID string) error
	ListOtherIncomes(ctx context.Context) ([]domain.OtherIncome, error)
}

// RevenueRepositoryFacade combines the four revenue-cycle transaction stores.
type RevenueRepositoryFacade interface {
	CashRevenueRepository
	CreditRevenueRepository
	ReceivablePaymentRepository
	OtherIncomeRepository
}
