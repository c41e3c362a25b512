package mapping

import (
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	"github.com/clearbooks-dev/clearbooks_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to its model row.
// Lines are mapped separately since they live in their own table.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		CompanyID:        d.CompanyID,
		EntryDate:        d.EntryDate,
		Description:      d.Description,
		SourceDocumentID: d.SourceDocumentID,
		IsAdjusting:      d.IsAdjusting,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain line to its model row.
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		LineType:    string(d.LineType),
		Amount:      d.Amount,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model header row plus its line rows into a
// domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalEntryLine) domain.JournalEntry {
	entry := domain.JournalEntry{
		EntryID:          m.EntryID,
		CompanyID:        m.CompanyID,
		EntryDate:        m.EntryDate,
		Description:      m.Description,
		SourceDocumentID: m.SourceDocumentID,
		IsAdjusting:      m.IsAdjusting,
		Lines:            make([]domain.JournalEntryLine, len(lines)),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	for i, line := range lines {
		entry.Lines[i] = ToDomainJournalEntryLine(line)
	}
	return entry
}

// ToDomainJournalEntryLine converts a model line row to a domain line.
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		LineType:    domain.LineType(m.LineType),
		Amount:      m.Amount,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
