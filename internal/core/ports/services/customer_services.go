package services

import (
	"context"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/SscSPs/revenue_cycle_app/internal/dto"
)

// CustomerSvcFacade manages customers.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, caller domain.Caller) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}
