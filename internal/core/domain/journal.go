package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefType identifies which business transaction produced a journal entry.
type RefType string

const (
	RefCashRevenue       RefType = "CASH_REVENUE"
	RefCreditRevenue     RefType = "CREDIT_REVENUE"
	RefReceivablePayment RefType = "RECEIVABLE_PAYMENT"
	RefOtherIncome       RefType = "OTHER_INCOME"
	RefManual            RefType = "MANUAL"
)

var referencePrefixes = map[RefType]string{
	RefCashRevenue:       "CASH",
	RefCreditRevenue:     "CREDIT",
	RefReceivablePayment: "PAYMENT",
	RefOtherIncome:       "OTHER",
	RefManual:            "MANUAL",
}

// BuildReference returns the human reference of an entry, e.g. "CASH-<id>".
func BuildReference(refType RefType, id string) string {
	prefix, ok := referencePrefixes[refType]
	if !ok {
		prefix = string(refType)
	}
	return prefix + "-" + id
}

// ManualBalanceTolerance is the largest debit/credit difference accepted for manual entries.
var ManualBalanceTolerance = decimal.New(1, -2)

// JournalEntry is a dated double-entry record composed of lines.
type JournalEntry struct {
	JournalEntryID string        `json:"journalEntryID"`
	Date           time.Time     `json:"date"`
	Description    string        `json:"description"`
	Reference      string        `json:"reference"`
	RefType        RefType       `json:"refType"`
	RefID          *string       `json:"refID,omitempty"`
	Lines          []JournalLine `json:"lines"`
	AuditFields
}

// Totals returns the sum of debits and credits over all lines.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// IsBalanced reports whether debits equal credits exactly.
func (e JournalEntry) IsBalanced() bool {
	d, c := e.Totals()
	return d.Equal(c)
}

// JournalLine is one side of a journal entry. Exactly one of Debit or Credit is normally non-zero.
type JournalLine struct {
	JournalLineID  string          `json:"journalLineID"`
	JournalEntryID string          `json:"journalEntryID"`
	AccountID      string          `json:"accountID"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Seq            int             `json:"seq"`
	CreatedAt      time.Time       `json:"createdAt"`

	// Populated when lines are read back joined to their account and entry.
	AccountCode      string    `json:"accountCode,omitempty"`
	AccountName      string    `json:"accountName,omitempty"`
	EntryDate        time.Time `json:"-"`
	EntryDescription string    `json:"-"`
	EntryReference   string    `json:"-"`
}
