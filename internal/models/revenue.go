package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRevenue is a row of the cash_revenues table.
type CashRevenue struct {
	CashRevenueID string          `db:"cash_revenue_id"`
	RevenueDate   time.Time       `db:"revenue_date"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	CustomerID    *string         `db:"customer_id"`
	JournalID     *string         `db:"journal_entry_id"`
	AuditFields
}

// CreditRevenue is a row of the credit_revenues table.
type CreditRevenue struct {
	CreditRevenueID string          `db:"credit_revenue_id"`
	RevenueDate     time.Time       `db:"revenue_date"`
	DueDate         time.Time       `db:"due_date"`
	Description     string          `db:"description"`
	Amount          decimal.Decimal `db:"amount"`
	PaidAmount      decimal.Decimal `db:"paid_amount"`
	Status          string          `db:"status"`
	CustomerID      string          `db:"customer_id"`
	CustomerName    *string         `db:"customer_name"` // joined, not a column
	JournalID       *string         `db:"journal_entry_id"`
	Version         int             `db:"version"`
	AuditFields
}

// ReceivablePayment is a row of the receivable_payments table.
type ReceivablePayment struct {
	PaymentID   string          `db:"payment_id"`
	CreditID    string          `db:"credit_revenue_id"`
	PaymentDate time.Time       `db:"payment_date"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	JournalID   *string         `db:"journal_entry_id"`
	AuditFields
}

// OtherIncome is a row of the other_incomes table.
type OtherIncome struct {
	OtherIncomeID string          `db:"other_income_id"`
	IncomeDate    time.Time       `db:"income_date"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	JournalID     *string         `db:"journal_entry_id"`
	AuditFields
}
