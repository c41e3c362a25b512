package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	portsrepo "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// journalService orchestrates posting and reading journal entries.
type journalService struct {
	BaseService
	journalRepo  portsrepo.JournalEntryRepository
	documentRepo portsrepo.DocumentRepository
	accountRepo  portsrepo.AccountReader
	now          func() time.Time
	newID        func() string
}

// JournalServiceOption configures optional dependencies of the journal service.
type JournalServiceOption func(*journalService)

// WithJournalAuthorizer sets the authorizer used for company access checks.
func WithJournalAuthorizer(a portssvc.AuthorizerSvc) JournalServiceOption {
	return func(s *journalService) {
		s.Authorizer = a
	}
}

// WithJournalClock overrides the clock, for tests.
func WithJournalClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.now = now
	}
}

// WithJournalIDGenerator overrides ID generation, for tests.
func WithJournalIDGenerator(newID func() string) JournalServiceOption {
	return func(s *journalService) {
		s.newID = newID
	}
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalEntryRepository, documentRepo portsrepo.DocumentRepository, accountRepo portsrepo.AccountReader, opts ...JournalServiceOption) portssvc.JournalSvcFacade {
	s := &journalService{
		journalRepo:  journalRepo,
		documentRepo: documentRepo,
		accountRepo:  accountRepo,
		now:          func() time.Time { return time.Now().UTC() },
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateRequestFields accumulates every entry-level and line-level input
// violation before any collaborator is consulted.
func (s *journalService) validateRequestFields(req dto.CreateJournalEntryRequest) []string {
	violations := domain.ValidateEntryInput(req.CompanyID, req.Description, req.EntryDate)
	for i, line := range req.Lines {
		for _, v := range domain.ValidateLineInput(line.AccountID, domain.LineType(line.LineType), line.Amount) {
			violations = append(violations, fmt.Sprintf("line %d: %s", i+1, v))
		}
	}
	return violations
}

// validateAccounts checks every referenced account against the company's
// chart: it must exist, belong to the company, and be active.
func (s *journalService) validateAccounts(ctx context.Context, req dto.CreateJournalEntryRequest) ([]string, error) {
	found := s.accountRepo.FindAccountsByCompany(ctx, req.CompanyID)
	if found.IsFailure() {
		return nil, found.Err()
	}
	chart := make(map[string]domain.Account, len(found.Value()))
	for _, account := range found.Value() {
		chart[account.AccountID] = account
	}

	var violations []string
	for i, line := range req.Lines {
		account, ok := chart[line.AccountID]
		if !ok {
			violations = append(violations, fmt.Sprintf("line %d: account %s not found in company chart", i+1, line.AccountID))
			continue
		}
		if !account.IsActive {
			violations = append(violations, fmt.Sprintf("line %d: account %s is deactivated", i+1, line.AccountID))
		}
	}
	return violations, nil
}

// fetchSourceDocument loads and checks the referenced source document: it
// must exist, belong to the same company, not already be completed, and not
// already be referenced by another entry.
func (s *journalService) fetchSourceDocument(ctx context.Context, documentID, companyID string) (domain.Document, error) {
	found := s.documentRepo.FindDocumentByID(ctx, documentID)
	if found.IsFailure() {
		if errors.Is(found.Err(), apperrors.ErrNotFound) {
			return domain.Document{}, fmt.Errorf("%w: source document %s not found", apperrors.ErrNotFound, documentID)
		}
		return domain.Document{}, found.Err()
	}
	doc := found.Value()

	// A document from another company is reported as not found rather than
	// forbidden, so callers cannot probe for foreign document IDs.
	if doc.CompanyID != companyID {
		return domain.Document{}, fmt.Errorf("%w: source document %s not found", apperrors.ErrNotFound, documentID)
	}
	if doc.Status == domain.Completed {
		return domain.Document{}, fmt.Errorf("%w: source document %s is already completed", apperrors.ErrConflict, documentID)
	}

	existing := s.journalRepo.FindEntryBySourceDocument(ctx, documentID)
	if existing.IsSuccess() {
		return domain.Document{}, fmt.Errorf("%w: source document %s is already referenced by entry %s", apperrors.ErrConflict, documentID, existing.Value().EntryID)
	}
	if !errors.Is(existing.Err(), apperrors.ErrNotFound) {
		return domain.Document{}, existing.Err()
	}
	return doc, nil
}

// completeSourceDocument walks the document to COMPLETED and persists the
// transition. A PENDING_REVIEW document is first moved through IN_PROGRESS;
// one parked on USER_INPUT_NEEDED resumes review first.
func (s *journalService) completeSourceDocument(ctx context.Context, doc domain.Document, actorUserID string) error {
	now := s.now()
	switch doc.Status {
	case domain.PendingReview:
		if err := doc.StartReview(actorUserID, now); err != nil {
			return err
		}
	case domain.UserInputNeeded:
		if err := doc.ResumeReview(actorUserID, now); err != nil {
			return err
		}
	}
	if err := doc.Complete(actorUserID, now); err != nil {
		return err
	}
	if persisted := s.documentRepo.UpdateDocumentStatus(ctx, doc); persisted.IsFailure() {
		return persisted.Err()
	}
	return nil
}

// CreateJournalEntry validates the request, checks every referenced
// collaborator, enforces the double-entry law, and only then persists the
// entry and its lines atomically. When a source document is referenced it is
// marked COMPLETED after the entry lands.
func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) outcome.Outcome[dto.JournalEntryResponse] {
	if err := s.AuthorizeCompanyAccess(ctx, creatorUserID, req.CompanyID); err != nil {
		return outcome.Fail[dto.JournalEntryResponse](err)
	}

	violations := s.validateRequestFields(req)

	accountViolations, err := s.validateAccounts(ctx, req)
	if err != nil {
		s.LogError(ctx, err, "failed to load chart of accounts", slog.String("company_id", req.CompanyID))
		return outcome.Fail[dto.JournalEntryResponse](err)
	}
	violations = append(violations, accountViolations...)
	if len(violations) > 0 {
		return outcome.Fail[dto.JournalEntryResponse](fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(violations, "; ")))
	}

	var sourceDoc *domain.Document
	if req.SourceDocumentID != nil {
		doc, err := s.fetchSourceDocument(ctx, *req.SourceDocumentID, req.CompanyID)
		if err != nil {
			return outcome.Fail[dto.JournalEntryResponse](err)
		}
		sourceDoc = &doc
	}

	lines := make([]domain.NewLineParams, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = domain.NewLineParams{
			AccountID: line.AccountID,
			LineType:  domain.LineType(line.LineType),
			Amount:    line.Amount,
		}
	}
	built := domain.NewJournalEntry(domain.NewEntryParams{
		EntryID:          s.newID(),
		CompanyID:        req.CompanyID,
		EntryDate:        req.EntryDate,
		Description:      req.Description,
		SourceDocumentID: req.SourceDocumentID,
		IsAdjusting:      req.IsAdjusting,
		Lines:            lines,
		CreatedBy:        creatorUserID,
		Now:              s.now(),
	}, s.newID)
	if built.IsFailure() {
		return outcome.Fail[dto.JournalEntryResponse](built.Err())
	}
	entry := built.Value()

	if report := entry.ValidateDoubleEntry(); !report.IsValid {
		s.LogInfo(ctx, "journal entry rejected by double-entry check",
			slog.String("company_id", req.CompanyID),
			slog.Int("violations", len(report.Violations)))
		return outcome.Fail[dto.JournalEntryResponse](report.DoubleEntryError())
	}

	if saved := s.journalRepo.SaveEntry(ctx, entry); saved.IsFailure() {
		s.LogError(ctx, saved.Err(), "failed to persist journal entry", slog.String("entry_id", entry.EntryID))
		return outcome.Fail[dto.JournalEntryResponse](saved.Err())
	}

	if sourceDoc != nil {
		if err := s.completeSourceDocument(ctx, *sourceDoc, creatorUserID); err != nil {
			// The entry is already posted; surface the document failure
			// rather than pretending the whole operation succeeded.
			s.LogError(ctx, err, "journal entry posted but source document completion failed",
				slog.String("entry_id", entry.EntryID),
				slog.String("document_id", sourceDoc.DocumentID))
			return outcome.Fail[dto.JournalEntryResponse](err)
		}
	}

	s.LogInfo(ctx, "journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("company_id", entry.CompanyID),
		slog.Int("lines", len(entry.Lines)))
	return outcome.Ok(dto.ToJournalEntryResponse(entry))
}

// GetJournalEntry retrieves one entry with its lines.
func (s *journalService) GetJournalEntry(ctx context.Context, entryID, requestingUserID string) outcome.Outcome[dto.JournalEntryResponse] {
	found := s.journalRepo.FindEntryByID(ctx, entryID)
	if found.IsFailure() {
		return outcome.Fail[dto.JournalEntryResponse](found.Err())
	}
	entry := found.Value()
	if err := s.AuthorizeCompanyAccess(ctx, requestingUserID, entry.CompanyID); err != nil {
		return outcome.Fail[dto.JournalEntryResponse](err)
	}
	return outcome.Ok(dto.ToJournalEntryResponse(entry))
}

// ListJournalEntries retrieves all entries for a company.
func (s *journalService) ListJournalEntries(ctx context.Context, companyID, requestingUserID string) outcome.Outcome[[]dto.JournalEntryResponse] {
	if err := s.AuthorizeCompanyAccess(ctx, requestingUserID, companyID); err != nil {
		return outcome.Fail[[]dto.JournalEntryResponse](err)
	}
	found := s.journalRepo.FindEntriesByCompany(ctx, companyID)
	if found.IsFailure() {
		return outcome.Fail[[]dto.JournalEntryResponse](found.Err())
	}
	return outcome.Ok(dto.ToJournalEntryResponses(found.Value()))
}

// ListJournalEntriesByDateRange retrieves entries dated inside [from, to].
func (s *journalService) ListJournalEntriesByDateRange(ctx context.Context, companyID string, from, to time.Time, requestingUserID string) outcome.Outcome[[]dto.JournalEntryResponse] {
	if to.Before(from) {
		return outcome.Failf[[]dto.JournalEntryResponse]("%w: date range end %s precedes start %s", apperrors.ErrValidation, to.Format(time.DateOnly), from.Format(time.DateOnly))
	}
	if err := s.AuthorizeCompanyAccess(ctx, requestingUserID, companyID); err != nil {
		return outcome.Fail[[]dto.JournalEntryResponse](err)
	}
	found := s.journalRepo.FindEntriesByDateRange(ctx, companyID, from, to)
	if found.IsFailure() {
		return outcome.Fail[[]dto.JournalEntryResponse](found.Err())
	}
	return outcome.Ok(dto.ToJournalEntryResponses(found.Value()))
}
