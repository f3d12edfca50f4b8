package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_cycle_app/internal/dto"
	"github.com/SscSPs/revenue_cycle_app/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type revenueService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	revenueRepo  portsrepo.RevenueRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	posting      portssvc.JournalPostingSvc
	audit        portssvc.AuditSink
}

// NewRevenueService creates the revenue-cycle transaction service.
func NewRevenueService(
	txManager portsrepo.TransactionManager,
	revenueRepo portsrepo.RevenueRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	posting portssvc.JournalPostingSvc,
	audit portssvc.AuditSink,
) portssvc.RevenueSvcFacade {
	return &revenueService{
		txManager:    txManager,
		revenueRepo:  revenueRepo,
		customerRepo: customerRepo,
		posting:      posting,
		audit:        audit,
	}
}

var _ portssvc.RevenueSvcFacade = (*revenueService)(nil)

// logWorkflowError logs a failed workflow at a level matching its category.
func (s *revenueService) logWorkflowError(ctx context.Context, err error, msg string, keyvals ...any) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNotFound):
		s.LogDebug(ctx, msg, append(keyvals, slog.String("error", err.Error()))...)
	case errors.Is(err, apperrors.ErrConcurrency):
		s.GetLogger(ctx).Warn(msg, append(keyvals, slog.String("error", err.Error()))...)
	default:
		// Configuration faults land here and must be loud.
		s.LogError(ctx, err, msg, keyvals...)
	}
}

func (s *revenueService) findCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer tidak ditemukan", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return customer, nil
}

func (s *revenueService) CreateCashRevenue(ctx context.Context, req dto.CreateCashRevenueRequest, caller domain.Caller) (*domain.Posted[domain.CashRevenue], error) {
	amount, err := utils.ParsePositiveAmount("amount", req.Amount.String())
	if err != nil {
		return nil, err
	}
	date, err := utils.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	revenue := domain.CashRevenue{
		CashRevenueID: uuid.NewString(),
		Date:          date,
		Description:   strings.TrimSpace(req.Description),
		Amount:        amount,
		AuditFields:   newAuditFields(caller.UserID, s.now()),
	}
	if req.CustomerID != nil && strings.TrimSpace(*req.CustomerID) != "" {
		customerID := strings.TrimSpace(*req.CustomerID)
		revenue.CustomerID = &customerID
	}

	var journal *domain.JournalEntry
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if revenue.CustomerID != nil {
			if _, err := s.findCustomer(txCtx, *revenue.CustomerID); err != nil {
				return err
			}
		}
		if err := s.revenueRepo.SaveCashRevenue(txCtx, revenue); err != nil {
			return err
		}
		posted, err := s.posting.PostCashRevenueJournal(txCtx, revenue)
		if err != nil {
			return err
		}
		if err := s.revenueRepo.SetCashRevenueJournal(txCtx, revenue.CashRevenueID, posted.JournalEntryID); err != nil {
			return err
		}
		journal = posted
		return nil
	})
	if err != nil {
		s.logWorkflowError(ctx, err, "Failed to create cash revenue")
		return nil, err
	}
	revenue.JournalID = &journal.JournalEntryID

	s.LogInfo(ctx, "Cash revenue recorded",
		slog.String("cash_revenue_id", revenue.CashRevenueID),
		slog.String("journal_entry_id", journal.JournalEntryID))
	s.audit.Record(ctx, caller, domain.AuditCreate, domain.EntityCashRevenues, revenue.CashRevenueID,
		"Transaksi kas "+descriptionOr(revenue.Description, DefaultCashRevenueDescription))

	return &domain.Posted[domain.CashRevenue]{Transaction: revenue, Journal: *journal}, nil
}

func (s *revenueService) CreateCreditRevenue(ctx context.Context, req dto.CreateCreditRevenueRequest, caller domain.Caller) (*domain.Posted[domain.CreditRevenue], error) {
	amount, err := utils.ParsePositiveAmount("amount", req.Amount.String())
	if err != nil {
		return nil, err
	}
	date, err := utils.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	dueDate, err := utils.ParseDate("dueDate", req.DueDate)
	if err != nil {
		return nil, err
	}
	if dueDate.Before(date) {
		return nil, fmt.Errorf("%w: jatuh tempo tidak boleh sebelum tanggal transaksi", apperrors.ErrValidation)
	}
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer wajib diisi", apperrors.ErrValidation)
	}

	revenue := domain.CreditRevenue{
		CreditRevenueID: uuid.NewString(),
		Date:            date,
		DueDate:         dueDate,
		Description:     strings.TrimSpace(req.Description),
		Amount:          amount,
		PaidAmount:      decimal.Zero,
		Status:          domain.Unpaid,
		CustomerID:      customerID,
		Version:         1,
		AuditFields:     newAuditFields(caller.UserID, s.now()),
	}

	var journal *domain.JournalEntry
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		customer, err := s.findCustomer(txCtx, customerID)
		if err != nil {
			return err
		}
		revenue.CustomerName = customer.Name
		if err := s.revenueRepo.SaveCreditRevenue(txCtx, revenue); err != nil {
			return err
		}
		posted, err := s.posting.PostCreditRevenueJournal(txCtx, revenue)
		if err != nil {
			return err
		}
		if err := s.revenueRepo.SetCreditRevenueJournal(txCtx, revenue.CreditRevenueID, posted.JournalEntryID); err != nil {
			return err
		}
		journal = posted
		return nil
	})
	if err != nil {
		s.logWorkflowError(ctx, err, "Failed to create credit revenue")
		return nil, err
	}
	revenue.JournalID = &journal.JournalEntryID

	s.LogInfo(ctx, "Credit revenue recorded",
		slog.String("credit_revenue_id", revenue.CreditRevenueID),
		slog.String("journal_entry_id", journal.JournalEntryID))
	s.audit.Record(ctx, caller, domain.AuditCreate, domain.EntityCreditRevenues, revenue.CreditRevenueID,
		"Penjualan kredit ke "+revenue.CustomerName)

	return &domain.Posted[domain.CreditRevenue]{Transaction: revenue, Journal: *journal}, nil
}

// CreateReceivablePayment settles part or all of a credit sale. The credit row is locked for the
// whole unit of work and its update is conditional on the version read, so two concurrent
// payments can never push the paid amount past the total.
func (s *revenueService) CreateReceivablePayment(ctx context.Context, req dto.CreateReceivablePaymentRequest, caller domain.Caller) (*domain.Posted[domain.ReceivablePayment], error) {
	amount, err := utils.ParsePositiveAmount("amount", req.Amount.String())
	if err != nil {
		return nil, err
	}
	date, err := utils.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	now := s.now()
	payment := domain.ReceivablePayment{
		PaymentID:   uuid.NewString(),
		CreditID:    strings.TrimSpace(req.CreditID),
		Date:        date,
		Description: strings.TrimSpace(req.Description),
		Amount:      amount,
		AuditFields: newAuditFields(caller.UserID, now),
	}

	var (
		journal *domain.JournalEntry
		credit  *domain.CreditRevenue
	)
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		credit, err = s.revenueRepo.FindCreditRevenueForUpdate(txCtx, payment.CreditID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: Piutang tidak ditemukan", apperrors.ErrNotFound)
			}
			return err
		}

		newPaid, newStatus, err := credit.ApplyPayment(amount)
		if err != nil {
			return err
		}

		if payment.Description == "" {
			payment.Description = DefaultPaymentDescriptionPrefix + credit.CustomerName
		}
		if err := s.revenueRepo.SaveReceivablePayment(txCtx, payment); err != nil {
			return err
		}
		posted, err := s.posting.PostReceivablePaymentJournal(txCtx, payment, *credit)
		if err != nil {
			return err
		}
		if err := s.revenueRepo.SetReceivablePaymentJournal(txCtx, payment.PaymentID, posted.JournalEntryID); err != nil {
			return err
		}
		if err := s.revenueRepo.UpdateCreditRevenuePayment(txCtx, credit.CreditRevenueID, credit.Version,
			newPaid, newStatus, caller.UserID, now); err != nil {
			return err
		}
		journal = posted
		return nil
	})
	if err != nil {
		s.logWorkflowError(ctx, err, "Failed to create receivable payment", slog.String("credit_revenue_id", payment.CreditID))
		return nil, err
	}
	payment.JournalID = &journal.JournalEntryID

	s.LogInfo(ctx, "Receivable payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("credit_revenue_id", payment.CreditID),
		slog.String("journal_entry_id", journal.JournalEntryID))
	s.audit.Record(ctx, caller, domain.AuditCreate, domain.EntityReceivablePayments, payment.PaymentID,
		"Pembayaran piutang dari "+credit.CustomerName)

	return &domain.Posted[domain.ReceivablePayment]{Transaction: payment, Journal: *journal}, nil
}

func (s *revenueService) CreateOtherIncome(ctx context.Context, req dto.CreateOtherIncomeRequest, caller domain.Caller) (*domain.Posted[domain.OtherIncome], error) {
	amount, err := utils.ParsePositiveAmount("amount", req.Amount.String())
	if err != nil {
		return nil, err
	}
	date, err := utils.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	income := domain.OtherIncome{
		OtherIncomeID: uuid.NewString(),
		Date:          date,
		Description:   strings.TrimSpace(req.Description),
		Amount:        amount,
		AuditFields:   newAuditFields(caller.UserID, s.now()),
	}

	var journal *domain.JournalEntry
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.revenueRepo.SaveOtherIncome(txCtx, income); err != nil {
			return err
		}
		posted, err := s.posting.PostOtherIncomeJournal(txCtx, income)
		if err != nil {
			return err
		}
		if err := s.revenueRepo.SetOtherIncomeJournal(txCtx, income.OtherIncomeID, posted.JournalEntryID); err != nil {
			return err
		}
		journal = posted
		return nil
	})
	if err != nil {
		s.logWorkflowError(ctx, err, "Failed to create other income")
		return nil, err
	}
	income.JournalID = &journal.JournalEntryID

	s.LogInfo(ctx, "Other income recorded",
		slog.String("other_income_id", income.OtherIncomeID),
		slog.String("journal_entry_id", journal.JournalEntryID))
	s.audit.Record(ctx, caller, domain.AuditCreate, domain.EntityOtherIncomes, income.OtherIncomeID,
		"Pendapatan lain: "+descriptionOr(income.Description, DefaultOtherIncomeDescription))

	return &domain.Posted[domain.OtherIncome]{Transaction: income, Journal: *journal}, nil
}

func (s *revenueService) ListCashRevenues(ctx context.Context) ([]domain.CashRevenue, error) {
	revenues, err := s.revenueRepo.ListCashRevenues(ctx, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash revenues")
		return nil, err
	}
	return revenues, nil
}

func (s *revenueService) ListCreditRevenues(ctx context.Context) ([]domain.CreditRevenue, error) {
	revenues, err := s.revenueRepo.ListCreditRevenues(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list credit revenues")
		return nil, err
	}
	return revenues, nil
}

func (s *revenueService) GetCreditRevenueByID(ctx context.Context, creditRevenueID string) (*domain.CreditRevenue, error) {
	credit, err := s.revenueRepo.FindCreditRevenueByID(ctx, creditRevenueID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: Piutang tidak ditemukan", apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to get credit revenue", slog.String("credit_revenue_id", creditRevenueID))
		return nil, err
	}
	return credit, nil
}

func (s *revenueService) ListReceivablePayments(ctx context.Context) ([]domain.ReceivablePayment, error) {
	payments, err := s.revenueRepo.ListReceivablePayments(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list receivable payments")
		return nil, err
	}
	return payments, nil
}

func (s *revenueService) ListOtherIncomes(ctx context.Context) ([]domain.OtherIncome, error) {
	incomes, err := s.revenueRepo.ListOtherIncomes(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list other incomes")
		return nil, err
	}
	return incomes, nil
}
