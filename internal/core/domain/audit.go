package domain

import "time"

// AuditAction is the kind of change recorded in the audit trail.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// Audit trail entity names.
const (
	EntityCashRevenues       = "cash_revenues"
	EntityCreditRevenues     = "credit_revenues"
	EntityReceivablePayments = "receivable_payments"
	EntityOtherIncomes       = "other_incomes"
	EntityCustomers          = "customers"
	EntityAccounts           = "accounts"
	EntityJournalEntries     = "journal_entries"
)

// AuditRecord is an append-only note of who changed what.
type AuditRecord struct {
	AuditID     string      `json:"auditID"`
	UserID      string      `json:"userID"`
	Action      AuditAction `json:"action"`
	Entity      string      `json:"entity"`
	EntityID    string      `json:"entityID"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"createdAt"`
}
