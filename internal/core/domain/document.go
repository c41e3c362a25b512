package domain

import (
	"fmt"
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// DocumentType tags an uploaded file with its accounting meaning.
type DocumentType string

const (
	Invoice       DocumentType = "INVOICE"
	Receipt       DocumentType = "RECEIPT"
	BankStatement DocumentType = "BANK_STATEMENT"
	OtherDocument DocumentType = "OTHER"
)

// ValidDocumentType reports whether t is one of the known document types.
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case Invoice, Receipt, BankStatement, OtherDocument:
		return true
	}
	return false
}

// DocumentStatus is the review workflow state of a document.
//
// The allowed transitions are:
//
//	PENDING_REVIEW -> IN_PROGRESS -> {USER_INPUT_NEEDED <-> IN_PROGRESS} -> COMPLETED
//
// plus Reset back to PENDING_REVIEW from any state. COMPLETED is terminal
// apart from Reset, which administrative correction flows use.
type DocumentStatus string

const (
	PendingReview   DocumentStatus = "PENDING_REVIEW"
	InProgress      DocumentStatus = "IN_PROGRESS"
	UserInputNeeded DocumentStatus = "USER_INPUT_NEEDED"
	Completed       DocumentStatus = "COMPLETED"
)

// Document represents an uploaded financial document owned by a company.
// The physical bytes live with the file storage collaborator; the entity
// carries only the storage path.
type Document struct {
	DocumentID       string         `json:"documentID"`
	CompanyID        string         `json:"companyID"`
	UploadedByUserID string         `json:"uploadedByUserID"`
	StoragePath      string         `json:"storagePath"`
	FileName         string         `json:"fileName"`
	DocumentType     DocumentType   `json:"documentType"`
	Status           DocumentStatus `json:"status"`
	AuditFields
}

// NewDocumentParams carries the validated inputs for creating a document.
type NewDocumentParams struct {
	DocumentID       string
	CompanyID        string
	UploadedByUserID string
	StoragePath      string
	FileName         string
	DocumentType     DocumentType
	Now              time.Time
}

// ValidateDocumentInput checks the caller-supplied fields and returns every
// violation found.
func ValidateDocumentInput(companyID, uploadedByUserID, storagePath, fileName string, docType DocumentType) []string {
	var violations []string
	if companyID == "" {
		violations = append(violations, "company ID is required")
	}
	if uploadedByUserID == "" {
		violations = append(violations, "uploader user ID is required")
	}
	if storagePath == "" {
		violations = append(violations, "storage path is required")
	}
	if fileName == "" {
		violations = append(violations, "file name is required")
	}
	if !ValidDocumentType(docType) {
		violations = append(violations, fmt.Sprintf("unknown document type %q", docType))
	}
	return violations
}

// NewDocument builds a validated Document in the PENDING_REVIEW state.
func NewDocument(p NewDocumentParams) outcome.Outcome[Document] {
	if violations := ValidateDocumentInput(p.CompanyID, p.UploadedByUserID, p.StoragePath, p.FileName, p.DocumentType); len(violations) > 0 {
		return outcome.Fail[Document](validationError(violations))
	}
	return outcome.Ok(Document{
		DocumentID:       p.DocumentID,
		CompanyID:        p.CompanyID,
		UploadedByUserID: p.UploadedByUserID,
		StoragePath:      p.StoragePath,
		FileName:         p.FileName,
		DocumentType:     p.DocumentType,
		Status:           PendingReview,
		AuditFields:      NewAuditFields(p.UploadedByUserID, p.Now),
	})
}

// transition moves the document from the required source state to the target
// state. Calling it out of state order indicates a sequencing bug in the
// caller, reported as an ErrConflict.
func (d *Document) transition(from, to DocumentStatus, actorUserID string, now time.Time) error {
	if d.Status != from {
		return fmt.Errorf("%w: document %s is %s, expected %s", apperrors.ErrConflict, d.DocumentID, d.Status, from)
	}
	d.Status = to
	d.Touch(actorUserID, now)
	return nil
}

// StartReview moves a pending document into active review.
func (d *Document) StartReview(actorUserID string, now time.Time) error {
	return d.transition(PendingReview, InProgress, actorUserID, now)
}

// RequestUserInput parks an in-progress document until the uploader responds.
func (d *Document) RequestUserInput(actorUserID string, now time.Time) error {
	return d.transition(InProgress, UserInputNeeded, actorUserID, now)
}

// ResumeReview returns a parked document to active review.
func (d *Document) ResumeReview(actorUserID string, now time.Time) error {
	return d.transition(UserInputNeeded, InProgress, actorUserID, now)
}

// Complete marks an in-progress document as done. COMPLETED is terminal
// except for Reset.
func (d *Document) Complete(actorUserID string, now time.Time) error {
	return d.transition(InProgress, Completed, actorUserID, now)
}

// Reset returns the document to PENDING_REVIEW from any state. Only
// administrative correction flows exercise this.
func (d *Document) Reset(actorUserID string, now time.Time) error {
	d.Status = PendingReview
	d.Touch(actorUserID, now)
	return nil
}
