package dto

import (
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalEntryLine is one debit or credit in a new entry request.
type CreateJournalEntryLine struct {
	AccountID string          `json:"accountID" binding:"required"`
	LineType  string          `json:"lineType" binding:"required,oneof=DEBIT CREDIT"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// CreateJournalEntryRequest defines the input for posting a journal entry.
type CreateJournalEntryRequest struct {
	CompanyID        string                   `json:"companyID" binding:"required"`
	EntryDate        time.Time                `json:"entryDate" binding:"required"`
	Description      string                   `json:"description" binding:"required"`
	SourceDocumentID *string                  `json:"sourceDocumentID,omitempty"`
	IsAdjusting      bool                     `json:"isAdjusting"`
	Lines            []CreateJournalEntryLine `json:"lines" binding:"required,min=2,dive"`
}

// JournalEntryLineResponse defines the data returned for one line.
type JournalEntryLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	LineType  string          `json:"lineType"`
	Amount    decimal.Decimal `json:"amount"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID          string                     `json:"entryID"`
	CompanyID        string                     `json:"companyID"`
	EntryDate        time.Time                  `json:"entryDate"`
	Description      string                     `json:"description"`
	SourceDocumentID *string                    `json:"sourceDocumentID,omitempty"`
	IsAdjusting      bool                       `json:"isAdjusting"`
	Lines            []JournalEntryLineResponse `json:"lines"`
	CreatedAt        time.Time                  `json:"createdAt"`
	CreatedBy        string                     `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalEntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalEntryLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			LineType:  string(l.LineType),
			Amount:    l.Amount,
		}
	}
	return JournalEntryResponse{
		EntryID:          e.EntryID,
		CompanyID:        e.CompanyID,
		EntryDate:        e.EntryDate,
		Description:      e.Description,
		SourceDocumentID: e.SourceDocumentID,
		IsAdjusting:      e.IsAdjusting,
		Lines:            lines,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToJournalEntryResponse(e)
	}
	return responses
}
