package mapping

import (
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/SscSPs/revenue_cycle_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: models.AccountType(d.AccountType),
		Description: optionalString(d.Description),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		Description: derefString(m.Description),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Name:        m.Name,
		Phone:       derefString(m.Phone),
		Address:     derefString(m.Address),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		Name:        d.Name,
		Phone:       optionalString(d.Phone),
		Address:     optionalString(d.Address),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAuditRecord converts a model AuditRecord to a domain AuditRecord
func ToDomainAuditRecord(m models.AuditRecord) domain.AuditRecord {
	return domain.AuditRecord{
		AuditID:     m.AuditID,
		UserID:      m.UserID,
		Action:      domain.AuditAction(m.Action),
		Entity:      m.Entity,
		EntityID:    m.EntityID,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}
