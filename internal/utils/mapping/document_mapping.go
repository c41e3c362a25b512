package mapping

import (
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	"github.com/clearbooks-dev/clearbooks_backend/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:       d.DocumentID,
		CompanyID:        d.CompanyID,
		UploadedByUserID: d.UploadedByUserID,
		StoragePath:      d.StoragePath,
		FileName:         d.FileName,
		DocumentType:     string(d.DocumentType),
		Status:           string(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:       m.DocumentID,
		CompanyID:        m.CompanyID,
		UploadedByUserID: m.UploadedByUserID,
		StoragePath:      m.StoragePath,
		FileName:         m.FileName,
		DocumentType:     domain.DocumentType(m.DocumentType),
		Status:           domain.DocumentStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDocumentSlice converts a slice of model Documents to domain Documents
func ToDomainDocumentSlice(ms []models.Document) []domain.Document {
	ds := make([]domain.Document, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocument(m)
	}
	return ds
}
