package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
)

func (d *dataset) accountByCode(code string) (domain.Account, bool) {
	for _, a := range d.accounts {
		if a.Code == code {
			return a, true
		}
	}
	return domain.Account{}, false
}

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var out *domain.Account
	err := s.read(ctx, func(d *dataset) error {
		a, ok := d.accounts[accountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		out = &a
		return nil
	})
	return out, err
}

func (s *Store) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	var out *domain.Account
	err := s.read(ctx, func(d *dataset) error {
		a, ok := d.accountByCode(code)
		if !ok {
			return fmt.Errorf("%w: account with code %s", apperrors.ErrNotFound, code)
		}
		out = &a
		return nil
	})
	return out, err
}

func (s *Store) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	err := s.read(ctx, func(d *dataset) error {
		for _, id := range accountIDs {
			if a, ok := d.accounts[id]; ok {
				out[id] = a
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var out []domain.Account
	err := s.read(ctx, func(d *dataset) error {
		out = make([]domain.Account, 0, len(d.accounts))
		for _, a := range d.accounts {
			out = append(out, a)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
		return nil
	})
	return out, err
}

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	return s.write(ctx, func(d *dataset) error {
		if _, ok := d.accountByCode(account.Code); ok {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
		}
		if _, ok := d.accounts[account.AccountID]; ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.AccountID)
		}
		d.accounts[account.AccountID] = account
		return nil
	})
}

func (s *Store) UpsertAccountByCode(ctx context.Context, account domain.Account) (bool, error) {
	created := false
	err := s.write(ctx, func(d *dataset) error {
		if existing, ok := d.accountByCode(account.Code); ok {
			existing.Name = account.Name
			existing.AccountType = account.AccountType
			existing.Description = account.Description
			existing.LastUpdatedAt = account.LastUpdatedAt
			existing.LastUpdatedBy = account.LastUpdatedBy
			d.accounts[existing.AccountID] = existing
			return nil
		}
		d.accounts[account.AccountID] = account
		created = true
		return nil
	})
	return created, err
}
