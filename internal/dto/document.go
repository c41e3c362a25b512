package dto

import (
	"io"
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
)

// UploadDocumentRequest defines the input for uploading a document. Content
// carries the raw bytes; SizeBytes and ContentType are validated against the
// upload policy before any storage call is made.
type UploadDocumentRequest struct {
	CompanyID    string
	FileName     string
	ContentType  string
	SizeBytes    int64
	DocumentType string
	Content      io.Reader
}

// DocumentAction names one explicit review-workflow transition.
type DocumentAction string

const (
	ActionStartReview      DocumentAction = "start_review"
	ActionRequestUserInput DocumentAction = "request_user_input"
	ActionResumeReview     DocumentAction = "resume_review"
	ActionComplete         DocumentAction = "complete"
	ActionReset            DocumentAction = "reset"
)

// TransitionDocumentRequest applies one workflow action to a document.
type TransitionDocumentRequest struct {
	Action string `json:"action" binding:"required,oneof=start_review request_user_input resume_review complete reset"`
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID       string    `json:"documentID"`
	CompanyID        string    `json:"companyID"`
	UploadedByUserID string    `json:"uploadedByUserID"`
	StoragePath      string    `json:"storagePath"`
	FileName         string    `json:"fileName"`
	DocumentType     string    `json:"documentType"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToDocumentResponse converts a domain.Document to its response DTO.
func ToDocumentResponse(d domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:       d.DocumentID,
		CompanyID:        d.CompanyID,
		UploadedByUserID: d.UploadedByUserID,
		StoragePath:      d.StoragePath,
		FileName:         d.FileName,
		DocumentType:     string(d.DocumentType),
		Status:           string(d.Status),
		CreatedAt:        d.CreatedAt,
	}
}

// ToDocumentResponses converts a slice of documents.
func ToDocumentResponses(docs []domain.Document) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		responses[i] = ToDocumentResponse(d)
	}
	return responses
}
