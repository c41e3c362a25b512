// Package services defines the application-facing orchestrator contracts.
// Every operation returns an outcome.Outcome wrapping either a response DTO
// or the error describing why the use case failed.
package services

import (
	"context"
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// JournalReaderSvc defines read operations over posted journal entries.
type JournalReaderSvc interface {
	// GetJournalEntry retrieves one entry with its lines.
	GetJournalEntry(ctx context.Context, entryID, requestingUserID string) outcome.Outcome[dto.JournalEntryResponse]

	// ListJournalEntries retrieves all entries for a company.
	ListJournalEntries(ctx context.Context, companyID, requestingUserID string) outcome.Outcome[[]dto.JournalEntryResponse]

	// ListJournalEntriesByDateRange retrieves entries dated inside [from, to].
	ListJournalEntriesByDateRange(ctx context.Context, companyID string, from, to time.Time, requestingUserID string) outcome.Outcome[[]dto.JournalEntryResponse]
}

// JournalWriterSvc defines the posting operation.
type JournalWriterSvc interface {
	// CreateJournalEntry validates, invariant-checks and posts a new entry.
	// When the request references a source document the document is marked
	// COMPLETED after the entry persists.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) outcome.Outcome[dto.JournalEntryResponse]
}

// JournalSvcFacade combines all journal service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
