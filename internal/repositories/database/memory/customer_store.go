package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
)

func (s *Store) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	return s.write(ctx, func(d *dataset) error {
		if _, ok := d.customers[customer.CustomerID]; ok {
			return fmt.Errorf("%w: customer %s", apperrors.ErrDuplicate, customer.CustomerID)
		}
		d.customers[customer.CustomerID] = customer
		return nil
	})
}

func (s *Store) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	var out *domain.Customer
	err := s.read(ctx, func(d *dataset) error {
		c, ok := d.customers[customerID]
		if !ok {
			return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		out = &c
		return nil
	})
	return out, err
}

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	err := s.read(ctx, func(d *dataset) error {
		out = make([]domain.Customer, 0, len(d.customers))
		for _, c := range d.customers {
			out = append(out, c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}
