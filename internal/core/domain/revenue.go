package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ReceivableStatus is the settlement state of a credit sale.
type ReceivableStatus string

const (
	Unpaid  ReceivableStatus = "UNPAID"
	Partial ReceivableStatus = "PARTIAL"
	Paid    ReceivableStatus = "PAID"
)

// StatusFor derives the receivable status from the paid and total amounts.
func StatusFor(paid, amount decimal.Decimal) ReceivableStatus {
	switch {
	case paid.GreaterThanOrEqual(amount):
		return Paid
	case paid.IsPositive():
		return Partial
	default:
		return Unpaid
	}
}

// CashRevenue is a sale settled immediately in cash.
type CashRevenue struct {
	CashRevenueID string          `json:"cashRevenueID"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	CustomerID    *string         `json:"customerID,omitempty"`
	JournalID     *string         `json:"journalID,omitempty"`
	AuditFields
}

// CreditRevenue is a sale on account that creates a receivable.
type CreditRevenue struct {
	CreditRevenueID string              `json:"creditRevenueID"`
	Date            time.Time           `json:"date"`
	DueDate         time.Time           `json:"dueDate"`
	Description     string              `json:"description"`
	Amount          decimal.Decimal     `json:"amount"`
	PaidAmount      decimal.Decimal     `json:"paidAmount"`
	Status          ReceivableStatus    `json:"status"`
	CustomerID      string              `json:"customerID"`
	CustomerName    string              `json:"customerName,omitempty"` // populated on read
	JournalID       *string             `json:"journalID,omitempty"`
	Version         int                 `json:"version"`
	Payments        []ReceivablePayment `json:"payments,omitempty"` // populated on list
	AuditFields
}

// Remaining returns the amount still owed.
func (c CreditRevenue) Remaining() decimal.Decimal {
	return c.Amount.Sub(c.PaidAmount)
}

// ApplyPayment returns the paid amount and status after settling amount against the receivable.
// It fails with a validation error when amount exceeds the remaining balance.
func (c CreditRevenue) ApplyPayment(amount decimal.Decimal) (decimal.Decimal, ReceivableStatus, error) {
	if !amount.IsPositive() {
		return c.PaidAmount, c.Status, fmt.Errorf("%w: jumlah harus lebih dari 0", apperrors.ErrValidation)
	}
	if amount.GreaterThan(c.Remaining()) {
		return c.PaidAmount, c.Status, fmt.Errorf("%w: Jumlah pembayaran melebihi sisa piutang", apperrors.ErrValidation)
	}
	newPaid := c.PaidAmount.Add(amount)
	return newPaid, StatusFor(newPaid, c.Amount), nil
}

// ReceivablePayment is a collection against a credit sale.
type ReceivablePayment struct {
	PaymentID   string          `json:"paymentID"`
	CreditID    string          `json:"creditID"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	JournalID   *string         `json:"journalID,omitempty"`
	AuditFields
}

// OtherIncome is non-sales income received in cash.
type OtherIncome struct {
	OtherIncomeID string          `json:"otherIncomeID"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	JournalID     *string         `json:"journalID,omitempty"`
	AuditFields
}
