package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	JournalEntryID string    `db:"journal_entry_id"`
	EntryDate      time.Time `db:"entry_date"`
	Description    string    `db:"description"`
	Reference      string    `db:"reference"`
	RefType        string    `db:"ref_type"`
	RefID          *string   `db:"ref_id"` // Nullable
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	JournalLineID  string          `db:"journal_line_id"`
	JournalEntryID string          `db:"journal_entry_id"`
	AccountID      string          `db:"account_id"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	Seq            int             `db:"seq"`
	CreatedAt      time.Time       `db:"created_at"`
}
