// Package repositories defines the persistence collaborator contracts the
// core orchestrators depend on. Every method returns an outcome.Outcome so
// the core treats every boundary call uniformly instead of mixing error
// conventions; failures wrap the apperrors sentinels.
package repositories

import (
	"context"
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// JournalEntryReader defines read operations for journal entry data.
type JournalEntryReader interface {
	// FindEntryByID retrieves an entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) outcome.Outcome[domain.JournalEntry]

	// FindEntriesByCompany retrieves all entries for a company, lines included.
	FindEntriesByCompany(ctx context.Context, companyID string) outcome.Outcome[[]domain.JournalEntry]

	// FindEntriesByDateRange retrieves entries whose entry date falls in
	// [from, to], lines included.
	FindEntriesByDateRange(ctx context.Context, companyID string, from, to time.Time) outcome.Outcome[[]domain.JournalEntry]

	// FindEntryBySourceDocument retrieves the entry posted against a source
	// document. The failure branch carries apperrors.ErrNotFound when no
	// entry references the document.
	FindEntryBySourceDocument(ctx context.Context, documentID string) outcome.Outcome[domain.JournalEntry]
}

// JournalEntryWriter defines write operations for journal entry data.
type JournalEntryWriter interface {
	// SaveEntry persists an entry and its lines as one unit, inside a single
	// database transaction. Either everything lands or nothing does; no
	// orphaned header survives a failed line write.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) outcome.Outcome[outcome.Unit]

	// UpdateEntry updates the mutable header fields (date, description,
	// adjusting flag) of an existing entry.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) outcome.Outcome[outcome.Unit]

	// DeleteEntry removes an entry and its lines.
	DeleteEntry(ctx context.Context, entryID string) outcome.Outcome[outcome.Unit]
}

// TrialBalanceComputer computes the derived trial balance read model.
type TrialBalanceComputer interface {
	// ComputeTrialBalance aggregates all lines dated on or before asOf
	// against the company's chart of accounts.
	ComputeTrialBalance(ctx context.Context, companyID string, asOf time.Time) outcome.Outcome[domain.TrialBalance]
}

// JournalEntryRepository combines all journal-entry repository interfaces.
type JournalEntryRepository interface {
	JournalEntryReader
	JournalEntryWriter
	TrialBalanceComputer
}
