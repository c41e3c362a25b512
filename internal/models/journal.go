package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the database row for a journal entry header.
type JournalEntry struct {
	EntryID          string    `db:"entry_id"`
	CompanyID        string    `db:"company_id"`
	EntryDate        time.Time `db:"entry_date"`
	Description      string    `db:"description"`
	SourceDocumentID *string   `db:"source_document_id"` // Nullable
	IsAdjusting      bool      `db:"is_adjusting"`
	AuditFields
}

// JournalEntryLine is the database row for one debit or credit line.
type JournalEntryLine struct {
	LineID    string          `db:"line_id"`
	EntryID   string          `db:"entry_id"`
	AccountID string          `db:"account_id"`
	LineType  string          `db:"line_type"`
	Amount    decimal.Decimal `db:"amount"`
	AuditFields
}
