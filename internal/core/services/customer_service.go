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
	"github.com/google/uuid"
)

type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	audit        portssvc.AuditSink
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo portsrepo.CustomerRepositoryFacade, audit portssvc.AuditSink) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: repo, audit: audit}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, caller domain.Caller) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nama customer wajib diisi", apperrors.ErrValidation)
	}

	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		Name:        name,
		Phone:       strings.TrimSpace(req.Phone),
		Address:     strings.TrimSpace(req.Address),
		AuditFields: newAuditFields(caller.UserID, s.now()),
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer")
		return nil, err
	}

	s.LogInfo(ctx, "Customer created", slog.String("customer_id", customer.CustomerID))
	s.audit.Record(ctx, caller, domain.AuditCreate, domain.EntityCustomers, customer.CustomerID, "Customer baru: "+customer.Name)
	return &customer, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get customer", slog.String("customer_id", customerID))
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, err
	}
	return customers, nil
}
