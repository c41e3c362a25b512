package services

import (
	"context"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// DocumentSvcFacade defines document upload and review-workflow operations.
type DocumentSvcFacade interface {
	// UploadDocument validates the upload policy (MIME allow-list, size cap),
	// delegates the bytes to the storage collaborator and persists the
	// document record. Policy violations fail before any storage call.
	UploadDocument(ctx context.Context, req dto.UploadDocumentRequest, uploaderUserID string) outcome.Outcome[dto.DocumentResponse]

	// GetDocument retrieves one document.
	GetDocument(ctx context.Context, documentID, requestingUserID string) outcome.Outcome[dto.DocumentResponse]

	// ListDocuments retrieves a company's documents, optionally filtered by
	// workflow status.
	ListDocuments(ctx context.Context, companyID string, status *domain.DocumentStatus, requestingUserID string) outcome.Outcome[[]dto.DocumentResponse]

	// TransitionDocument applies one explicit workflow action. Out-of-order
	// actions fail with a conflict.
	TransitionDocument(ctx context.Context, documentID string, action dto.DocumentAction, actorUserID string) outcome.Outcome[dto.DocumentResponse]

	// DeleteDocument removes the record and the stored file.
	DeleteDocument(ctx context.Context, documentID, actorUserID string) outcome.Outcome[outcome.Unit]
}
