package repositories

import (
	"context"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
)

// CustomerRepositoryFacade defines persistence for customers.
type CustomerRepositoryFacade interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	// ListCustomers returns customers ordered by name.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}
