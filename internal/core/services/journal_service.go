package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_cycle_app/internal/dto"
	"github.com/SscSPs/revenue_cycle_app/internal/utils"
	"github.com/SscSPs/revenue_cycle_app/internal/utils/accounting"
	"github.com/SscSPs/revenue_cycle_app/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fallback entry descriptions used when the transaction carries none.
const (
	DefaultCashRevenueDescription   = "Penerimaan Kas dari Penjualan"
	DefaultCreditRevenueDescription = "Penjualan Kredit"
	DefaultPaymentDescriptionPrefix = "Pembayaran Piutang - "
	DefaultOtherIncomeDescription   = "Pendapatan Lain-lain"
)

const (
	defaultJournalPageSize = 20
	maxJournalPageSize     = 100
)

type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	coa         portssvc.FixedAccountResolverSvc
	txManager   portsrepo.TransactionManager
	audit       portssvc.AuditSink
}

// NewJournalService creates the posting engine together with manual entry and journal reads.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	coa portssvc.FixedAccountResolverSvc,
	txManager portsrepo.TransactionManager,
	audit portssvc.AuditSink,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		coa:         coa,
		txManager:   txManager,
		audit:       audit,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// twoLineRecipe describes an automatic entry: one debit line and one credit line of equal amount.
type twoLineRecipe struct {
	refType     domain.RefType
	refID       string
	date        time.Time
	description string
	amount      decimal.Decimal
	debit       domain.Account
	credit      domain.Account
	createdBy   string
}

func (s *journalService) postTwoLine(ctx context.Context, r twoLineRecipe) (*domain.JournalEntry, error) {
	if !r.amount.IsPositive() {
		return nil, fmt.Errorf("%w: jumlah harus lebih dari 0", apperrors.ErrValidation)
	}
	if err := utils.CheckAmountBounds("jumlah", r.amount); err != nil {
		return nil, err
	}

	now := s.now()
	entryID := uuid.NewString()
	refID := r.refID
	entry := domain.JournalEntry{
		JournalEntryID: entryID,
		Date:           r.date,
		Description:    r.description,
		Reference:      domain.BuildReference(r.refType, r.refID),
		RefType:        r.refType,
		RefID:          &refID,
		Lines: []domain.JournalLine{
			{
				JournalLineID:  uuid.NewString(),
				JournalEntryID: entryID,
				AccountID:      r.debit.AccountID,
				AccountCode:    r.debit.Code,
				AccountName:    r.debit.Name,
				Debit:          r.amount,
				Credit:         decimal.Zero,
				Seq:            1,
				CreatedAt:      now,
			},
			{
				JournalLineID:  uuid.NewString(),
				JournalEntryID: entryID,
				AccountID:      r.credit.AccountID,
				AccountCode:    r.credit.Code,
				AccountName:    r.credit.Name,
				Debit:          decimal.Zero,
				Credit:         r.amount,
				Seq:            2,
				CreatedAt:      now,
			},
		},
		AuditFields: newAuditFields(r.createdBy, now),
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry",
			slog.String("ref_type", string(r.refType)),
			slog.String("ref_id", r.refID))
		return nil, err
	}

	s.LogDebug(ctx, "Journal entry posted",
		slog.String("journal_entry_id", entryID),
		slog.String("reference", entry.Reference))
	return &entry, nil
}

func descriptionOr(description, fallback string) string {
	if d := strings.TrimSpace(description); d != "" {
		return d
	}
	return fallback
}

// PostCashRevenueJournal debits Cash and credits Sales Revenue.
func (s *journalService) PostCashRevenueJournal(ctx context.Context, revenue domain.CashRevenue) (*domain.JournalEntry, error) {
	fixed, err := s.coa.FixedAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return s.postTwoLine(ctx, twoLineRecipe{
		refType:     domain.RefCashRevenue,
		refID:       revenue.CashRevenueID,
		date:        revenue.Date,
		description: descriptionOr(revenue.Description, DefaultCashRevenueDescription),
		amount:      revenue.Amount,
		debit:       fixed.Cash,
		credit:      fixed.SalesRevenue,
		createdBy:   revenue.CreatedBy,
	})
}

// PostCreditRevenueJournal debits Accounts Receivable and credits Sales Revenue.
func (s *journalService) PostCreditRevenueJournal(ctx context.Context, revenue domain.CreditRevenue) (*domain.JournalEntry, error) {
	fixed, err := s.coa.FixedAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return s.postTwoLine(ctx, twoLineRecipe{
		refType:     domain.RefCreditRevenue,
		refID:       revenue.CreditRevenueID,
		date:        revenue.Date,
		description: descriptionOr(revenue.Description, DefaultCreditRevenueDescription),
		amount:      revenue.Amount,
		debit:       fixed.Receivable,
		credit:      fixed.SalesRevenue,
		createdBy:   revenue.CreatedBy,
	})
}

// PostReceivablePaymentJournal debits Cash and credits Accounts Receivable.
func (s *journalService) PostReceivablePaymentJournal(ctx context.Context, payment domain.ReceivablePayment, credit domain.CreditRevenue) (*domain.JournalEntry, error) {
	fixed, err := s.coa.FixedAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return s.postTwoLine(ctx, twoLineRecipe{
		refType:     domain.RefReceivablePayment,
		refID:       payment.PaymentID,
		date:        payment.Date,
		description: descriptionOr(payment.Description, DefaultPaymentDescriptionPrefix+credit.CustomerName),
		amount:      payment.Amount,
		debit:       fixed.Cash,
		credit:      fixed.Receivable,
		createdBy:   payment.CreatedBy,
	})
}

// PostOtherIncomeJournal debits Cash and credits Other Income.
func (s *journalService) PostOtherIncomeJournal(ctx context.Context, income domain.OtherIncome) (*domain.JournalEntry, error) {
	fixed, err := s.coa.FixedAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return s.postTwoLine(ctx, twoLineRecipe{
		refType:     domain.RefOtherIncome,
		refID:       income.OtherIncomeID,
		date:        income.Date,
		description: descriptionOr(income.Description, DefaultOtherIncomeDescription),
		amount:      income.Amount,
		debit:       fixed.Cash,
		credit:      fixed.OtherIncome,
		createdBy:   income.CreatedBy,
	})
}

// CreateManualJournal posts an administrator-entered entry. Debits and credits may differ by at
// most domain.ManualBalanceTolerance.
func (s *journalService) CreateManualJournal(ctx context.Context, req dto.CreateManualJournalRequest, caller domain.Caller) (*domain.JournalEntry, error) {
	if err := s.RequireAdmin(ctx, caller, "membuat jurnal manual"); err != nil {
		return nil, err
	}

	date, err := utils.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: deskripsi wajib diisi", apperrors.ErrValidation)
	}

	now := s.now()
	entryID := uuid.NewString()
	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, l := range req.Lines {
		debit, err := utils.ParseNonNegativeAmount("debit", l.Debit.String())
		if err != nil {
			return nil, err
		}
		credit, err := utils.ParseNonNegativeAmount("credit", l.Credit.String())
		if err != nil {
			return nil, err
		}
		lines[i] = domain.JournalLine{
			JournalLineID:  uuid.NewString(),
			JournalEntryID: entryID,
			AccountID:      strings.TrimSpace(l.AccountID),
			Debit:          debit,
			Credit:         credit,
			Seq:            i + 1,
			CreatedAt:      now,
		}
		accountIDs = append(accountIDs, lines[i].AccountID)
	}
	if err := accounting.ValidateManualLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	entry := domain.JournalEntry{
		JournalEntryID: entryID,
		Date:           date,
		Description:    description,
		Reference:      domain.BuildReference(domain.RefManual, entryID),
		RefType:        domain.RefManual,
		Lines:          lines,
		AuditFields:    newAuditFields(caller.UserID, now),
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		accounts, err := s.accountRepo.FindAccountsByIDs(txCtx, accountIDs)
		if err != nil {
			return err
		}
		for i := range entry.Lines {
			acc, ok := accounts[entry.Lines[i].AccountID]
			if !ok {
				return fmt.Errorf("%w: akun %s tidak ditemukan", apperrors.ErrNotFound, entry.Lines[i].AccountID)
			}
			entry.Lines[i].AccountCode = acc.Code
			entry.Lines[i].AccountName = acc.Name
		}
		return s.journalRepo.SaveJournalEntry(txCtx, entry)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to create manual journal")
		}
		return nil, err
	}

	s.LogInfo(ctx, "Manual journal created", slog.String("journal_entry_id", entryID))
	s.audit.Record(ctx, caller, domain.AuditCreate, domain.EntityJournalEntries, entryID, "Jurnal manual: "+description)
	return &entry, nil
}

func (s *journalService) GetJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalEntryByID(ctx, journalEntryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get journal entry", slog.String("journal_entry_id", journalEntryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	limit := pagination.NormalizeLimit(params.Limit, defaultJournalPageSize, maxJournalPageSize)

	var after *pagination.Cursor
	if params.NextToken != "" {
		cursor, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		after = &cursor
	}

	// Fetch one extra row to know whether another page exists.
	entries, err := s.journalRepo.ListJournalEntries(ctx, limit+1, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, err
	}

	resp := &dto.ListJournalEntriesResponse{JournalEntries: make([]dto.JournalEntryResponse, 0, limit)}
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.JournalEntryID})
		resp.NextToken = &token
	}
	for i := range entries {
		resp.JournalEntries = append(resp.JournalEntries, dto.ToJournalEntryResponse(&entries[i]))
	}
	return resp, nil
}
