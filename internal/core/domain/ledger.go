package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one journal line of an account together with the running balance after it.
type LedgerEntry struct {
	JournalLineID  string          `json:"journalLineID"`
	JournalEntryID string          `json:"journalEntryID"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Reference      string          `json:"reference"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Balance        decimal.Decimal `json:"balance"`
}

// AccountLedger is the ordered history of an account.
type AccountLedger struct {
	Account        Account         `json:"account"`
	Entries        []LedgerEntry   `json:"entries"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// AccountBalance is an account with its derived balance.
type AccountBalance struct {
	Account
	Balance decimal.Decimal `json:"balance"`
}
