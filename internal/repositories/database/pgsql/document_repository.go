package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	portsrepo "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/repositories"
	"github.com/clearbooks-dev/clearbooks_backend/internal/models"
	"github.com/clearbooks-dev/clearbooks_backend/internal/utils/mapping"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(db *pgxpool.Pool) portsrepo.DocumentRepository {
	return &PgxDocumentRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.DocumentRepository = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, company_id, uploaded_by_user_id, storage_path, file_name, document_type, status, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.CompanyID,
		&m.UploadedByUserID,
		&m.StoragePath,
		&m.FileName,
		&m.DocumentType,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxDocumentRepository) queryDocuments(ctx context.Context, query string, args ...any) outcome.Outcome[[]domain.Document] {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return outcome.Failf[[]domain.Document]("failed to query documents: %w", err)
	}
	defer rows.Close()

	var ms []models.Document
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return outcome.Failf[[]domain.Document]("failed to scan document row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return outcome.Failf[[]domain.Document]("failed while iterating document rows: %w", err)
	}
	return outcome.Ok(mapping.ToDomainDocumentSlice(ms))
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) outcome.Outcome[domain.Document] {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return outcome.Failf[domain.Document]("%w: document %s", apperrors.ErrNotFound, documentID)
		}
		return outcome.Failf[domain.Document]("failed to find document by ID %s: %w", documentID, err)
	}
	return outcome.Ok(mapping.ToDomainDocument(m))
}

func (r *PgxDocumentRepository) FindDocumentsByCompany(ctx context.Context, companyID string) outcome.Outcome[[]domain.Document] {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE company_id = $1 ORDER BY created_at DESC, document_id;`
	return r.queryDocuments(ctx, query, companyID)
}

func (r *PgxDocumentRepository) FindDocumentsByStatus(ctx context.Context, companyID string, status domain.DocumentStatus) outcome.Outcome[[]domain.Document] {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE company_id = $1 AND status = $2 ORDER BY created_at DESC, document_id;`
	return r.queryDocuments(ctx, query, companyID, string(status))
}

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) outcome.Outcome[outcome.Unit] {
	m := mapping.ToModelDocument(doc)
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID, m.CompanyID, m.UploadedByUserID, m.StoragePath, m.FileName,
		m.DocumentType, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return outcome.Fail[outcome.Unit](fmt.Errorf("%w: company %s", apperrors.ErrNotFound, m.CompanyID))
		}
		return outcome.Failf[outcome.Unit]("failed to save document %s: %w", m.DocumentID, err)
	}
	return outcome.Done()
}

func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, doc domain.Document) outcome.Outcome[outcome.Unit] {
	m := mapping.ToModelDocument(doc)
	query := `
		UPDATE documents
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE document_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.DocumentID, m.Status, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return outcome.Failf[outcome.Unit]("failed to update status of document %s: %w", m.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return outcome.Failf[outcome.Unit]("%w: document %s", apperrors.ErrNotFound, m.DocumentID)
	}
	return outcome.Done()
}

func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string) outcome.Outcome[outcome.Unit] {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return outcome.Fail[outcome.Unit](fmt.Errorf("%w: document %s is referenced by a journal entry", apperrors.ErrConflict, documentID))
		}
		return outcome.Failf[outcome.Unit]("failed to delete document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return outcome.Failf[outcome.Unit]("%w: document %s", apperrors.ErrNotFound, documentID)
	}
	return outcome.Done()
}
