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

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(db *pgxpool.Pool) portsrepo.CompanyRepository {
	return &PgxCompanyRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.CompanyRepository = (*PgxCompanyRepository)(nil)

const companyColumns = `company_id, owner_user_id, accountant_user_id, name, business_type, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCompany(row pgx.Row) (models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.OwnerUserID,
		&m.AccountantUserID,
		&m.Name,
		&m.BusinessType,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) outcome.Outcome[domain.Company] {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1;`
	m, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return outcome.Failf[domain.Company]("%w: company %s", apperrors.ErrNotFound, companyID)
		}
		return outcome.Failf[domain.Company]("failed to find company by ID %s: %w", companyID, err)
	}
	return outcome.Ok(mapping.ToDomainCompany(m))
}

func (r *PgxCompanyRepository) FindCompanyByUser(ctx context.Context, userID string) outcome.Outcome[domain.Company] {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE owner_user_id = $1;`
	m, err := scanCompany(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return outcome.Fail[domain.Company](fmt.Errorf("%w: user %s owns no company", apperrors.ErrNotFound, userID))
		}
		return outcome.Failf[domain.Company]("failed to find company for user %s: %w", userID, err)
	}
	return outcome.Ok(mapping.ToDomainCompany(m))
}

func (r *PgxCompanyRepository) FindCompaniesByAccountant(ctx context.Context, accountantUserID string) outcome.Outcome[[]domain.Company] {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE accountant_user_id = $1 ORDER BY created_at, company_id;`
	rows, err := r.Pool.Query(ctx, query, accountantUserID)
	if err != nil {
		return outcome.Failf[[]domain.Company]("failed to list companies for accountant %s: %w", accountantUserID, err)
	}
	defer rows.Close()

	var ms []models.Company
	for rows.Next() {
		m, err := scanCompany(rows)
		if err != nil {
			return outcome.Failf[[]domain.Company]("failed to scan company row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return outcome.Failf[[]domain.Company]("failed while iterating company rows: %w", err)
	}
	return outcome.Ok(mapping.ToDomainCompanySlice(ms))
}

func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) outcome.Outcome[outcome.Unit] {
	m := mapping.ToModelCompany(company)
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.OwnerUserID, m.AccountantUserID, m.Name, m.BusinessType, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		// The owner_user_id unique index backs the one-company-per-user rule.
		if isUniqueViolation(err) {
			return outcome.Fail[outcome.Unit](fmt.Errorf("%w: user %s already owns a company", apperrors.ErrDuplicate, m.OwnerUserID))
		}
		return outcome.Failf[outcome.Unit]("failed to save company %s: %w", m.CompanyID, err)
	}
	return outcome.Done()
}

func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) outcome.Outcome[outcome.Unit] {
	m := mapping.ToModelCompany(company)
	query := `
		UPDATE companies
		SET accountant_user_id = $2, name = $3, business_type = $4, is_active = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE company_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.AccountantUserID, m.Name, m.BusinessType, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return outcome.Failf[outcome.Unit]("failed to update company %s: %w", m.CompanyID, err)
	}
	if tag.RowsAffected() == 0 {
		return outcome.Failf[outcome.Unit]("%w: company %s", apperrors.ErrNotFound, m.CompanyID)
	}
	return outcome.Done()
}

func (r *PgxCompanyRepository) DeleteCompany(ctx context.Context, companyID string) outcome.Outcome[outcome.Unit] {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM companies WHERE company_id = $1;`, companyID)
	if err != nil {
		return outcome.Failf[outcome.Unit]("failed to delete company %s: %w", companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return outcome.Failf[outcome.Unit]("%w: company %s", apperrors.ErrNotFound, companyID)
	}
	return outcome.Done()
}

func (r *PgxCompanyRepository) SaveOpeningBalance(ctx context.Context, ob domain.OpeningBalance) outcome.Outcome[outcome.Unit] {
	m := mapping.ToModelOpeningBalance(ob)
	query := `
		INSERT INTO opening_balances (opening_balance_id, company_id, amount, as_of, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.OpeningBalanceID, m.CompanyID, m.Amount, m.AsOf,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return outcome.Fail[outcome.Unit](fmt.Errorf("%w: opening balance already recorded for company %s", apperrors.ErrDuplicate, m.CompanyID))
		}
		return outcome.Failf[outcome.Unit]("failed to save opening balance for company %s: %w", m.CompanyID, err)
	}
	return outcome.Done()
}
