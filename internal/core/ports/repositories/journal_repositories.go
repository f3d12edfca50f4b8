package repositories

import (
	"context"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/SscSPs/revenue_cycle_app/internal/utils/pagination"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindJournalEntryByID retrieves an entry with its lines ordered by seq.
	FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntries returns up to limit entries with lines, newest first, starting after cursor.
	ListJournalEntries(ctx context.Context, limit int, after *pagination.Cursor) ([]domain.JournalEntry, error)

	// ListLinesByAccountID returns every line posted to the account ordered by (created_at, seq),
	// joined with the date, description and reference of its entry.
	ListLinesByAccountID(ctx context.Context, accountID string) ([]domain.JournalLine, error)
}

// JournalWriter defines write operations for journal entries
type JournalWriter interface {
	// SaveJournalEntry inserts the entry and all its lines. Entries are never updated afterwards.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
