package mapping

import (
	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/SscSPs/revenue_cycle_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID: d.JournalEntryID,
		EntryDate:      d.Date,
		Description:    d.Description,
		Reference:      d.Reference,
		RefType:        string(d.RefType),
		RefID:          d.RefID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry without lines
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID: m.JournalEntryID,
		Date:           m.EntryDate,
		Description:    m.Description,
		Reference:      m.Reference,
		RefType:        domain.RefType(m.RefType),
		RefID:          m.RefID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		JournalLineID:  d.JournalLineID,
		JournalEntryID: d.JournalEntryID,
		AccountID:      d.AccountID,
		Debit:          d.Debit,
		Credit:         d.Credit,
		Seq:            d.Seq,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		JournalLineID:  m.JournalLineID,
		JournalEntryID: m.JournalEntryID,
		AccountID:      m.AccountID,
		Debit:          m.Debit,
		Credit:         m.Credit,
		Seq:            m.Seq,
		CreatedAt:      m.CreatedAt,
	}
}
