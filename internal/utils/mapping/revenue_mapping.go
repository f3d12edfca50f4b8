package mapping

import (
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/SscSPs/revenue_cycle_app/internal/models"
)

func ToModelCashRevenue(d domain.CashRevenue) models.CashRevenue {
	return models.CashRevenue{
		CashRevenueID: d.CashRevenueID,
		RevenueDate:   d.Date,
		Description:   d.Description,
		Amount:        d.Amount,
		CustomerID:    d.CustomerID,
		JournalID:     d.JournalID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCashRevenue(m models.CashRevenue) domain.CashRevenue {
	return domain.CashRevenue{
		CashRevenueID: m.CashRevenueID,
		Date:          m.RevenueDate,
		Description:   m.Description,
		Amount:        m.Amount,
		CustomerID:    m.CustomerID,
		JournalID:     m.JournalID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelCreditRevenue(d domain.CreditRevenue) models.CreditRevenue {
	return models.CreditRevenue{
		CreditRevenueID: d.CreditRevenueID,
		RevenueDate:     d.Date,
		DueDate:         d.DueDate,
		Description:     d.Description,
		Amount:          d.Amount,
		PaidAmount:      d.PaidAmount,
		Status:          string(d.Status),
		CustomerID:      d.CustomerID,
		JournalID:       d.JournalID,
		Version:         d.Version,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCreditRevenue(m models.CreditRevenue) domain.CreditRevenue {
	return domain.CreditRevenue{
		CreditRevenueID: m.CreditRevenueID,
		Date:            m.RevenueDate,
		DueDate:         m.DueDate,
		Description:     m.Description,
		Amount:          m.Amount,
		PaidAmount:      m.PaidAmount,
		Status:          domain.ReceivableStatus(m.Status),
		CustomerID:      m.CustomerID,
		CustomerName:    derefString(m.CustomerName),
		JournalID:       m.JournalID,
		Version:         m.Version,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelReceivablePayment(d domain.ReceivablePayment) models.ReceivablePayment {
	return models.ReceivablePayment{
		PaymentID:   d.PaymentID,
		CreditID:    d.CreditID,
		PaymentDate: d.Date,
		Description: d.Description,
		Amount:      d.Amount,
		JournalID:   d.JournalID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainReceivablePayment(m models.ReceivablePayment) domain.ReceivablePayment {
	return domain.ReceivablePayment{
		PaymentID:   m.PaymentID,
		CreditID:    m.CreditID,
		Date:        m.PaymentDate,
		Description: m.Description,
		Amount:      m.Amount,
		JournalID:   m.JournalID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelOtherIncome(d domain.OtherIncome) models.OtherIncome {
	return models.OtherIncome{
		OtherIncomeID: d.OtherIncomeID,
		IncomeDate:    d.Date,
		Description:   d.Description,
		Amount:        d.Amount,
		JournalID:     d.JournalID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainOtherIncome(m models.OtherIncome) domain.OtherIncome {
	return domain.OtherIncome{
		OtherIncomeID: m.OtherIncomeID,
		Date:          m.IncomeDate,
		Description:   m.Description,
		Amount:        m.Amount,
		JournalID:     m.JournalID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
