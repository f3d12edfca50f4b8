package services

import (
	"context"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/SscSPs/revenue_cycle_app/internal/dto"
)

// RevenueWriterSvc runs the four transaction-creating workflows. Each one persists the
// transaction, posts its journal and links them inside a single unit of work.
type RevenueWriterSvc interface {
	CreateCashRevenue(ctx context.Context, req dto.CreateCashRevenueRequest, caller domain.Caller) (*domain.Posted[domain.CashRevenue], error)
	CreateCreditRevenue(ctx context.Context, req dto.CreateCreditRevenueRequest, caller domain.Caller) (*domain.Posted[domain.CreditRevenue], error)
	CreateReceivablePayment(ctx context.Context, req dto.CreateReceivablePaymentRequest, caller domain.Caller) (*domain.Posted[domain.ReceivablePayment], error)
	CreateOtherIncome(ctx context.Context, req dto.CreateOtherIncomeRequest, caller domain.Caller) (*domain.Posted[domain.OtherIncome], error)
}

// RevenueReaderSvc lists recorded transactions.
type RevenueReaderSvc interface {
	ListCashRevenues(ctx context.Context) ([]domain.CashRevenue, error)
	ListCreditRevenues(ctx context.Context) ([]domain.CreditRevenue, error)
	GetCreditRevenueByID(ctx context.Context, creditRevenueID string) (*domain.CreditRevenue, error)
	ListReceivablePayments(ctx context.Context) ([]domain.ReceivablePayment, error)
	ListOtherIncomes(ctx context.Context) ([]domain.OtherIncome, error)
}

// RevenueSvcFacade combines all revenue-cycle service interfaces
type RevenueSvcFacade interface {
	RevenueWriterSvc
	RevenueReaderSvc
}
