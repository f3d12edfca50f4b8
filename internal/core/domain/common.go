package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// DateLayout is the calendar date format used for transaction and journal dates.
const DateLayout = "2006-01-02"

// Posted pairs a persisted business transaction with the journal entry generated for it.
type Posted[T any] struct {
	Transaction T            `json:"transaction"`
	Journal     JournalEntry `json:"journal"`
}
