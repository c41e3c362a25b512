package models

// Document is the database row for an uploaded source document.
type Document struct {
	DocumentID       string `db:"document_id"`
	CompanyID        string `db:"company_id"`
	UploadedByUserID string `db:"uploaded_by_user_id"`
	StoragePath      string `db:"storage_path"`
	FileName         string `db:"file_name"`
	DocumentType     string `db:"document_type"`
	Status           string `db:"status"`
	AuditFields
}
