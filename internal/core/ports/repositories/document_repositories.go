package repositories

import (
	"context"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// DocumentReader defines read operations for document data.
type DocumentReader interface {
	FindDocumentByID(ctx context.Context, documentID string) outcome.Outcome[domain.Document]

	FindDocumentsByCompany(ctx context.Context, companyID string) outcome.Outcome[[]domain.Document]

	FindDocumentsByStatus(ctx context.Context, companyID string, status domain.DocumentStatus) outcome.Outcome[[]domain.Document]
}

// DocumentWriter defines write operations for document data.
type DocumentWriter interface {
	SaveDocument(ctx context.Context, doc domain.Document) outcome.Outcome[outcome.Unit]

	// UpdateDocumentStatus persists a status transition; only the status and
	// audit fields change.
	UpdateDocumentStatus(ctx context.Context, doc domain.Document) outcome.Outcome[outcome.Unit]

	DeleteDocument(ctx context.Context, documentID string) outcome.Outcome[outcome.Unit]
}

// DocumentRepository combines all document repository interfaces.
type DocumentRepository interface {
	DocumentReader
	DocumentWriter
}
