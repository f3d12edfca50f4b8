package dto

import (
	"time"

	"github.com/SscSPs/revenue_cycle_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ManualJournalLineRequest is one line of a hand-entered journal.
type ManualJournalLineRequest struct {
	AccountID string `json:"accountId" binding:"required"`
	Debit     Amount `json:"debit"`
	Credit    Amount `json:"credit"`
}

// CreateManualJournalRequest defines a journal entered directly by an administrator.
type CreateManualJournalRequest struct {
	Date        string                     `json:"date" binding:"required,isodate"`
	Description string                     `json:"description" binding:"required"`
	Lines       []ManualJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	JournalLineID string          `json:"journalLineID"`
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode,omitempty"`
	AccountName   string          `json:"accountName,omitempty"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalEntryID string                `json:"journalEntryID"`
	Date           string                `json:"date"`
	Description    string                `json:"description"`
	Reference      string                `json:"reference"`
	RefType        domain.RefType        `json:"refType"`
	RefID          *string               `json:"refID,omitempty"`
	TotalDebit     decimal.Decimal       `json:"totalDebit"`
	TotalCredit    decimal.Decimal       `json:"totalCredit"`
	Lines          []JournalLineResponse `json:"lines"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	debit, credit := e.Totals()
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			JournalLineID: l.JournalLineID,
			AccountID:     l.AccountID,
			AccountCode:   l.AccountCode,
			AccountName:   l.AccountName,
			Debit:         l.Debit,
			Credit:        l.Credit,
		}
	}
	return JournalEntryResponse{
		JournalEntryID: e.JournalEntryID,
		Date:           e.Date.Format(domain.DateLayout),
		Description:    e.Description,
		Reference:      e.Reference,
		RefType:        e.RefType,
		RefID:          e.RefID,
		TotalDebit:     debit,
		TotalCredit:    credit,
		Lines:          lines,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	JournalEntries []JournalEntryResponse `json:"journalEntries"`
	NextToken      *string                `json:"nextToken,omitempty"`
}
