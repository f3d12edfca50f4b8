package dto

import "github.com/SscSPs/revenue_cycle_app/internal/core/domain"

// CreateCashRevenueRequest records a sale paid in cash.
type CreateCashRevenueRequest struct {
	Date        string  `json:"date" binding:"required,isodate"`
	Amount      Amount  `json:"amount" binding:"required,positive_amount"`
	Description string  `json:"description" binding:"required"`
	CustomerID  *string `json:"customerId"` // Optional
}

// CreateCreditRevenueRequest records a sale on account.
type CreateCreditRevenueRequest struct {
	Date        string `json:"date" binding:"required,isodate"`
	DueDate     string `json:"dueDate" binding:"required,isodate"`
	Amount      Amount `json:"amount" binding:"required,positive_amount"`
	Description string `json:"description"` // Optional
	CustomerID  string `json:"customerId" binding:"required"`
}

// CreateReceivablePaymentRequest records a collection against a credit sale.
type CreateReceivablePaymentRequest struct {
	CreditID    string `json:"creditId" binding:"required"`
	Date        string `json:"date" binding:"required,isodate"`
	Amount      Amount `json:"amount" binding:"required,positive_amount"`
	Description string `json:"description"` // Optional
}

// CreateOtherIncomeRequest records non-sales income received in cash.
type CreateOtherIncomeRequest struct {
	Date        string `json:"date" binding:"required,isodate"`
	Amount      Amount `json:"amount" binding:"required,positive_amount"`
	Description string `json:"description" binding:"required"`
}

// PostedResponse is returned by every transaction-creating endpoint.
type PostedResponse[T any] struct {
	Transaction T                    `json:"transaction"`
	Journal     JournalEntryResponse `json:"journal"`
	Message     string               `json:"message"`
}

// ToPostedResponse converts a domain.Posted to its response DTO.
func ToPostedResponse[T any](p *domain.Posted[T], message string) PostedResponse[T] {
	return PostedResponse[T]{
		Transaction: p.Transaction,
		Journal:     ToJournalEntryResponse(&p.Journal),
		Message:     message,
	}
}
