package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_cycle_app/internal/dto"
	"github.com/google/uuid"
)

// chartOfAccountsService implements portssvc.ChartOfAccountsSvcFacade
type chartOfAccountsService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	audit       portssvc.AuditSink

	mu    sync.RWMutex
	fixed *domain.FixedAccounts
}

// ChartOfAccountsOption is a functional option for configuring the chart of accounts service
type ChartOfAccountsOption func(*chartOfAccountsService)

// WithAccountAuditSink records account creation in the audit trail.
func WithAccountAuditSink(sink portssvc.AuditSink) ChartOfAccountsOption {
	return func(s *chartOfAccountsService) {
		s.audit = sink
	}
}

// NewChartOfAccountsService creates a new chart of accounts service with the provided options
func NewChartOfAccountsService(repo portsrepo.AccountRepositoryFacade, options ...ChartOfAccountsOption) portssvc.ChartOfAccountsSvcFacade {
	svc := &chartOfAccountsService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ChartOfAccountsSvcFacade = (*chartOfAccountsService)(nil)

func (s *chartOfAccountsService) LookupAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up account by code", slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

func (s *chartOfAccountsService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *chartOfAccountsService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

// FixedAccounts resolves the four posting accounts once and serves them from memory afterwards.
// Failures are not cached so a later seed can fix a missing account without a restart.
func (s *chartOfAccountsService) FixedAccounts(ctx context.Context) (domain.FixedAccounts, error) {
	s.mu.RLock()
	if s.fixed != nil {
		fixed := *s.fixed
		s.mu.RUnlock()
		return fixed, nil
	}
	s.mu.RUnlock()

	resolved := make(map[string]domain.Account, len(domain.FixedAccountCodes))
	for _, code := range domain.FixedAccountCodes {
		account, err := s.accountRepo.FindAccountByCode(ctx, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				cfgErr := fmt.Errorf("%w: akun %s tidak ditemukan di bagan akun", apperrors.ErrConfiguration, code)
				s.LogError(ctx, cfgErr, "Chart of accounts is missing a fixed posting account", slog.String("code", code))
				return domain.FixedAccounts{}, cfgErr
			}
			s.LogError(ctx, err, "Failed to resolve fixed posting account", slog.String("code", code))
			return domain.FixedAccounts{}, err
		}
		resolved[code] = *account
	}

	fixed := domain.FixedAccounts{
		Cash:         resolved[domain.CashAccountCode],
		Receivable:   resolved[domain.ReceivableAccountCode],
		SalesRevenue: resolved[domain.SalesRevenueAccountCode],
		OtherIncome:  resolved[domain.OtherIncomeAccountCode],
	}

	s.mu.Lock()
	s.fixed = &fixed
	s.mu.Unlock()
	return fixed, nil
}

func (s *chartOfAccountsService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, caller domain.Caller) (*domain.Account, error) {
	if err := s.RequireAdmin(ctx, caller, "menambah akun"); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: kode dan nama akun wajib diisi", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: tipe akun %q tidak dikenal", apperrors.ErrValidation, req.AccountType)
	}

	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        code,
		Name:        name,
		AccountType: req.AccountType,
		Description: strings.TrimSpace(req.Description),
		AuditFields: newAuditFields(caller.UserID, s.now()),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", code))
	if s.audit != nil {
		s.audit.Record(ctx, caller, domain.AuditCreate, domain.EntityAccounts, account.AccountID,
			fmt.Sprintf("Akun baru: %s - %s", account.Code, account.Name))
	}
	return &account, nil
}
