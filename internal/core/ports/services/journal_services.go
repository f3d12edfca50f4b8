package services

import (
	"context"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/SscSPs/revenue_cycle_app/internal/dto"
)

// JournalPostingSvc builds and persists the balanced entry for each revenue-cycle transaction.
// Posting only inserts the entry and its lines; linking the entry back to the transaction is
// the caller's job.
type JournalPostingSvc interface {
	PostCashRevenueJournal(ctx context.Context, revenue domain.CashRevenue) (*domain.JournalEntry, error)
	PostCreditRevenueJournal(ctx context.Context, revenue domain.CreditRevenue) (*domain.JournalEntry, error)
	PostReceivablePaymentJournal(ctx context.Context, payment domain.ReceivablePayment, credit domain.CreditRevenue) (*domain.JournalEntry, error)
	PostOtherIncomeJournal(ctx context.Context, income domain.OtherIncome) (*domain.JournalEntry, error)
}

// ManualJournalSvc lets administrators post free-form balanced entries.
type ManualJournalSvc interface {
	CreateManualJournal(ctx context.Context, req dto.CreateManualJournalRequest, caller domain.Caller) (*domain.JournalEntry, error)
}

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	GetJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)
	ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalPostingSvc
	ManualJournalSvc
	JournalReaderSvc
}
