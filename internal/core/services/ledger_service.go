package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/revenue_cycle_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/revenue_cycle_app/internal/core/ports/services"
	"github.com/SscSPs/revenue_cycle_app/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalReader
	workers     int
}

// NewLedgerService creates the read-only ledger service. workers bounds how many accounts are
// folded concurrently by ComputeAllAccountBalances.
func NewLedgerService(accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalReader, workers int) portssvc.LedgerSvc {
	if workers <= 0 {
		workers = 1
	}
	return &ledgerService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		workers:     workers,
	}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) ComputeAccountLedger(ctx context.Context, accountID string) (*domain.AccountLedger, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: akun tidak ditemukan", apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to load account for ledger", slog.String("account_id", accountID))
		return nil, err
	}

	ledger, err := s.foldAccount(ctx, *account)
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

// ComputeAllAccountBalances folds every account independently; results keep the code order of
// the chart of accounts regardless of which fold finishes first.
func (s *ledgerService) ComputeAllAccountBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for balances")
		return nil, err
	}

	balances := make([]domain.AccountBalance, len(accounts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, account := range accounts {
		i, account := i, account
		g.Go(func() error {
			ledger, err := s.foldAccount(gctx, account)
			if err != nil {
				return err
			}
			balances[i] = domain.AccountBalance{Account: account, Balance: ledger.CurrentBalance}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return balances, nil
}

func (s *ledgerService) foldAccount(ctx context.Context, account domain.Account) (domain.AccountLedger, error) {
	lines, err := s.journalRepo.ListLinesByAccountID(ctx, account.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load journal lines", slog.String("account_id", account.AccountID))
		return domain.AccountLedger{}, err
	}
	ledger, err := accounting.FoldLedger(account, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to fold ledger", slog.String("account_id", account.AccountID))
		return domain.AccountLedger{}, fmt.Errorf("%w: %s", apperrors.ErrInternal, err.Error())
	}
	return ledger, nil
}
