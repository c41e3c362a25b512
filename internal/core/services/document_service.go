package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	portsrepo "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/storage"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// MaxUploadSizeBytes caps document uploads at 10 MiB.
const MaxUploadSizeBytes = int64(10 << 20)

// allowedContentTypes is the upload MIME allow-list.
var allowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
	"image/webp":      {},
	"text/csv":        {},
}

// documentService orchestrates uploads and the review workflow.
type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepository
	journalRepo  portsrepo.JournalEntryReader
	fileStorage  storage.FileStorage
	now          func() time.Time
	newID        func() string
}

// DocumentServiceOption configures optional dependencies of the document service.
type DocumentServiceOption func(*documentService)

// WithDocumentAuthorizer sets the authorizer used for access checks.
func WithDocumentAuthorizer(a portssvc.AuthorizerSvc) DocumentServiceOption {
	return func(s *documentService) {
		s.Authorizer = a
	}
}

// WithDocumentClock overrides the clock, for tests.
func WithDocumentClock(now func() time.Time) DocumentServiceOption {
	return func(s *documentService) {
		s.now = now
	}
}

// WithDocumentIDGenerator overrides ID generation, for tests.
func WithDocumentIDGenerator(newID func() string) DocumentServiceOption {
	return func(s *documentService) {
		s.newID = newID
	}
}

// NewDocumentService creates a new document service.
func NewDocumentService(documentRepo portsrepo.DocumentRepository, journalRepo portsrepo.JournalEntryReader, fileStorage storage.FileStorage, opts ...DocumentServiceOption) portssvc.DocumentSvcFacade {
	s := &documentService{
		documentRepo: documentRepo,
		journalRepo:  journalRepo,
		fileStorage:  fileStorage,
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// validateUploadPolicy accumulates every policy violation in the upload
// request. It runs before any storage or repository call.
func validateUploadPolicy(req dto.UploadDocumentRequest) []string {
	var violations []string
	if req.CompanyID == "" {
		violations = append(violations, "company ID is required")
	}
	if req.FileName == "" {
		violations = append(violations, "file name is required")
	}
	if !domain.ValidDocumentType(domain.DocumentType(req.DocumentType)) {
		violations = append(violations, fmt.Sprintf("unknown document type %q", req.DocumentType))
	}
	if req.SizeBytes <= 0 {
		violations = append(violations, "file is empty")
	} else if req.SizeBytes > MaxUploadSizeBytes {
		violations = append(violations, fmt.Sprintf("file size %d exceeds the %d byte limit", req.SizeBytes, MaxUploadSizeBytes))
	}
	if _, ok := allowedContentTypes[strings.ToLower(req.ContentType)]; !ok {
		violations = append(violations, fmt.Sprintf("content type %q is not allowed", req.ContentType))
	}
	return violations
}

// UploadDocument validates the upload policy, stores the bytes and persists
// the document record in PENDING_REVIEW. Policy violations fail before the
// storage collaborator is touched; a failed record save removes the stored
// file again.
func (s *documentService) UploadDocument(ctx context.Context, req dto.UploadDocumentRequest, uploaderUserID string) outcome.Outcome[dto.DocumentResponse] {
	if violations := validateUploadPolicy(req); len(violations) > 0 {
		return outcome.Failf[dto.DocumentResponse]("%w: %s", apperrors.ErrValidation, strings.Join(violations, "; "))
	}
	if err := s.AuthorizeCompanyAccess(ctx, uploaderUserID, req.CompanyID); err != nil {
		return outcome.Fail[dto.DocumentResponse](err)
	}

	documentID := s.newID()
	storagePath := path.Join(req.CompanyID, documentID+strings.ToLower(path.Ext(req.FileName)))

	stored := s.fileStorage.Upload(ctx, req.Content, storagePath)
	if stored.IsFailure() {
		s.LogError(ctx, stored.Err(), "failed to store uploaded file", slog.String("company_id", req.CompanyID))
		return outcome.Fail[dto.DocumentResponse](stored.Err())
	}

	built := domain.NewDocument(domain.NewDocumentParams{
		DocumentID:       documentID,
		CompanyID:        req.CompanyID,
		UploadedByUserID: uploaderUserID,
		StoragePath:      stored.Value().Path,
		FileName:         req.FileName,
		DocumentType:     domain.DocumentType(req.DocumentType),
		Now:              s.now(),
	})
	if built.IsFailure() {
		s.removeStoredFile(ctx, stored.Value().Path)
		return outcome.Fail[dto.DocumentResponse](built.Err())
	}
	doc := built.Value()

	if saved := s.documentRepo.SaveDocument(ctx, doc); saved.IsFailure() {
		s.LogError(ctx, saved.Err(), "failed to persist document record", slog.String("document_id", documentID))
		s.removeStoredFile(ctx, stored.Value().Path)
		return outcome.Fail[dto.DocumentResponse](saved.Err())
	}

	s.LogInfo(ctx, "document uploaded",
		slog.String("document_id", doc.DocumentID),
		slog.String("company_id", doc.CompanyID),
		slog.Int64("size_bytes", req.SizeBytes))
	return outcome.Ok(dto.ToDocumentResponse(doc))
}

func (s *documentService) removeStoredFile(ctx context.Context, storagePath string) {
	if removed := s.fileStorage.Delete(ctx, storagePath); removed.IsFailure() {
		s.LogError(ctx, removed.Err(), "failed to remove stored file after error", slog.String("path", storagePath))
	}
}

// GetDocument retrieves one document.
func (s *documentService) GetDocument(ctx context.Context, documentID, requestingUserID string) outcome.Outcome[dto.DocumentResponse] {
	found := s.documentRepo.FindDocumentByID(ctx, documentID)
	if found.IsFailure() {
		return outcome.Fail[dto.DocumentResponse](found.Err())
	}
	doc := found.Value()
	if err := s.AuthorizeCompanyAccess(ctx, requestingUserID, doc.CompanyID); err != nil {
		return outcome.Fail[dto.DocumentResponse](err)
	}
	return outcome.Ok(dto.ToDocumentResponse(doc))
}

// ListDocuments retrieves a company's documents, optionally filtered by
// workflow status.
func (s *documentService) ListDocuments(ctx context.Context, companyID string, status *domain.DocumentStatus, requestingUserID string) outcome.Outcome[[]dto.DocumentResponse] {
	if err := s.AuthorizeCompanyAccess(ctx, requestingUserID, companyID); err != nil {
		return outcome.Fail[[]dto.DocumentResponse](err)
	}

	var found outcome.Outcome[[]domain.Document]
	if status != nil {
		found = s.documentRepo.FindDocumentsByStatus(ctx, companyID, *status)
	} else {
		found = s.documentRepo.FindDocumentsByCompany(ctx, companyID)
	}
	if found.IsFailure() {
		return outcome.Fail[[]dto.DocumentResponse](found.Err())
	}
	return outcome.Ok(dto.ToDocumentResponses(found.Value()))
}

// TransitionDocument applies one explicit workflow action. An action that
// does not apply to the document's current status fails with a conflict.
func (s *documentService) TransitionDocument(ctx context.Context, documentID string, action dto.DocumentAction, actorUserID string) outcome.Outcome[dto.DocumentResponse] {
	found := s.documentRepo.FindDocumentByID(ctx, documentID)
	if found.IsFailure() {
		return outcome.Fail[dto.DocumentResponse](found.Err())
	}
	doc := found.Value()
	if err := s.AuthorizeCompanyAccess(ctx, actorUserID, doc.CompanyID); err != nil {
		return outcome.Fail[dto.DocumentResponse](err)
	}

	now := s.now()
	var err error
	switch action {
	case dto.ActionStartReview:
		err = doc.StartReview(actorUserID, now)
	case dto.ActionRequestUserInput:
		err = doc.RequestUserInput(actorUserID, now)
	case dto.ActionResumeReview:
		err = doc.ResumeReview(actorUserID, now)
	case dto.ActionComplete:
		err = doc.Complete(actorUserID, now)
	case dto.ActionReset:
		err = doc.Reset(actorUserID, now)
	default:
		err = fmt.Errorf("%w: unknown document action %q", apperrors.ErrValidation, action)
	}
	if err != nil {
		return outcome.Fail[dto.DocumentResponse](err)
	}

	if updated := s.documentRepo.UpdateDocumentStatus(ctx, doc); updated.IsFailure() {
		s.LogError(ctx, updated.Err(), "failed to persist document transition", slog.String("document_id", documentID))
		return outcome.Fail[dto.DocumentResponse](updated.Err())
	}

	s.LogInfo(ctx, "document transitioned",
		slog.String("document_id", documentID),
		slog.String("action", string(action)),
		slog.String("status", string(doc.Status)))
	return outcome.Ok(dto.ToDocumentResponse(doc))
}

// DeleteDocument removes the record and the stored file. A document already
// referenced by a journal entry cannot be deleted.
func (s *documentService) DeleteDocument(ctx context.Context, documentID, actorUserID string) outcome.Outcome[outcome.Unit] {
	found := s.documentRepo.FindDocumentByID(ctx, documentID)
	if found.IsFailure() {
		return outcome.Fail[outcome.Unit](found.Err())
	}
	doc := found.Value()
	if err := s.AuthorizeCompanyAccess(ctx, actorUserID, doc.CompanyID); err != nil {
		return outcome.Fail[outcome.Unit](err)
	}

	referencing := s.journalRepo.FindEntryBySourceDocument(ctx, documentID)
	if referencing.IsSuccess() {
		return outcome.Failf[outcome.Unit]("%w: document %s is referenced by entry %s", apperrors.ErrConflict, documentID, referencing.Value().EntryID)
	}
	if !errors.Is(referencing.Err(), apperrors.ErrNotFound) {
		return outcome.Fail[outcome.Unit](referencing.Err())
	}

	if deleted := s.documentRepo.DeleteDocument(ctx, documentID); deleted.IsFailure() {
		return outcome.Fail[outcome.Unit](deleted.Err())
	}
	// The record is gone; a leftover file is only noise, so storage failures
	// here are logged, not surfaced.
	s.removeStoredFile(ctx, doc.StoragePath)

	s.LogInfo(ctx, "document deleted", slog.String("document_id", documentID))
	return outcome.Done()
}
