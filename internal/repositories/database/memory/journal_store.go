package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/apperrors"
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/SscSPs/revenue_cycle_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

func (s *Store) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	return s.write(ctx, func(d *dataset) error {
		if _, ok := d.entries[entry.JournalEntryID]; ok {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrDuplicate, entry.JournalEntryID)
		}
		for _, e := range d.entries {
			if e.Reference == entry.Reference {
				return fmt.Errorf("%w: journal reference %s", apperrors.ErrDuplicate, entry.Reference)
			}
		}
		for _, l := range entry.Lines {
			if _, ok := d.accounts[l.AccountID]; !ok {
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, l.AccountID)
			}
		}

		header := entry
		header.Lines = nil
		d.entries[entry.JournalEntryID] = header
		for _, l := range entry.Lines {
			l.JournalEntryID = entry.JournalEntryID
			d.lines = append(d.lines, stripJoined(l))
		}
		return nil
	})
}

// stripJoined drops the read-side fields so stored lines hold only their own columns.
func stripJoined(l domain.JournalLine) domain.JournalLine {
	l.AccountCode, l.AccountName = "", ""
	l.EntryDescription, l.EntryReference = "", ""
	l.EntryDate = time.Time{}
	return l
}

func (d *dataset) joinLine(l domain.JournalLine) domain.JournalLine {
	if a, ok := d.accounts[l.AccountID]; ok {
		l.AccountCode = a.Code
		l.AccountName = a.Name
	}
	if e, ok := d.entries[l.JournalEntryID]; ok {
		l.EntryDate = e.Date
		l.EntryDescription = e.Description
		l.EntryReference = e.Reference
	}
	return l
}

func (d *dataset) entryWithLines(header domain.JournalEntry) domain.JournalEntry {
	entry := header
	entry.Lines = nil
	for _, l := range d.lines {
		if l.JournalEntryID == header.JournalEntryID {
			entry.Lines = append(entry.Lines, d.joinLine(l))
		}
	}
	sort.SliceStable(entry.Lines, func(i, j int) bool { return entry.Lines[i].Seq < entry.Lines[j].Seq })
	return entry
}

func (s *Store) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	var out *domain.JournalEntry
	err := s.read(ctx, func(d *dataset) error {
		header, ok := d.entries[journalEntryID]
		if !ok {
			return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, journalEntryID)
		}
		entry := d.entryWithLines(header)
		out = &entry
		return nil
	})
	return out, err
}

func (s *Store) ListJournalEntries(ctx context.Context, limit int, after *pagination.Cursor) ([]domain.JournalEntry, error) {
	var out []domain.JournalEntry
	err := s.read(ctx, func(d *dataset) error {
		headers := make([]domain.JournalEntry, 0, len(d.entries))
		for _, e := range d.entries {
			if after == nil || after.Before(e.Date, e.CreatedAt, e.JournalEntryID) {
				headers = append(headers, e)
			}
		}
		sort.Slice(headers, func(i, j int) bool {
			a, b := headers[i], headers[j]
			if !a.Date.Equal(b.Date) {
				return a.Date.After(b.Date)
			}
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.JournalEntryID > b.JournalEntryID
		})
		if limit > 0 && len(headers) > limit {
			headers = headers[:limit]
		}
		out = make([]domain.JournalEntry, 0, len(headers))
		for _, h := range headers {
			out = append(out, d.entryWithLines(h))
		}
		return nil
	})
	return out, err
}

func (s *Store) ListLinesByAccountID(ctx context.Context, accountID string) ([]domain.JournalLine, error) {
	var out []domain.JournalLine
	err := s.read(ctx, func(d *dataset) error {
		for _, l := range d.lines {
			if l.AccountID == accountID {
				out = append(out, d.joinLine(l))
			}
		}
		// Stable: lines created at the same instant keep insertion order.
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func (s *Store) SumByAccountType(ctx context.Context, accountType domain.AccountType) (decimal.Decimal, decimal.Decimal, error) {
	debit, credit := decimal.Zero, decimal.Zero
	err := s.read(ctx, func(d *dataset) error {
		for _, l := range d.lines {
			if a, ok := d.accounts[l.AccountID]; ok && a.AccountType == accountType {
				debit = debit.Add(l.Debit)
				credit = credit.Add(l.Credit)
			}
		}
		return nil
	})
	return debit, credit, err
}

func (s *Store) SumByAccountCode(ctx context.Context, code string) (decimal.Decimal, decimal.Decimal, error) {
	debit, credit := decimal.Zero, decimal.Zero
	err := s.read(ctx, func(d *dataset) error {
		account, ok := d.accountByCode(code)
		if !ok {
			return nil
		}
		for _, l := range d.lines {
			if l.AccountID == account.AccountID {
				debit = debit.Add(l.Debit)
				credit = credit.Add(l.Credit)
			}
		}
		return nil
	})
	return debit, credit, err
}
