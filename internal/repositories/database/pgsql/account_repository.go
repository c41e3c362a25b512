package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	portsrepo "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/repositories"
	"github.com/clearbooks-dev/clearbooks_backend/internal/models"
	"github.com/clearbooks-dev/clearbooks_backend/internal/utils/mapping"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(db *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, company_id, name, account_type, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.CompanyID,
		&m.Name,
		&m.AccountType,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) outcome.Outcome[domain.Account] {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return outcome.Failf[domain.Account]("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return outcome.Failf[domain.Account]("failed to find account by ID %s: %w", accountID, err)
	}
	return outcome.Ok(mapping.ToDomainAccount(m))
}

func (r *PgxAccountRepository) FindAccountsByCompany(ctx context.Context, companyID string) outcome.Outcome[[]domain.Account] {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 ORDER BY name, account_id;`
	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return outcome.Failf[[]domain.Account]("failed to list accounts for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return outcome.Failf[[]domain.Account]("failed to scan account row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return outcome.Failf[[]domain.Account]("failed while iterating account rows: %w", err)
	}
	return outcome.Ok(mapping.ToDomainAccountSlice(ms))
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) outcome.Outcome[outcome.Unit] {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.CompanyID, m.Name, m.AccountType, m.Description, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return outcome.Fail[outcome.Unit](fmt.Errorf("%w: account name %q already exists in this chart", apperrors.ErrDuplicate, m.Name))
		}
		if isForeignKeyViolation(err) {
			return outcome.Fail[outcome.Unit](fmt.Errorf("%w: company %s", apperrors.ErrNotFound, m.CompanyID))
		}
		return outcome.Failf[outcome.Unit]("failed to save account %s: %w", m.AccountID, err)
	}
	return outcome.Done()
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID, actorUserID string, now time.Time) outcome.Outcome[outcome.Unit] {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, actorUserID)
	if err != nil {
		return outcome.Failf[outcome.Unit]("failed to deactivate account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return outcome.Failf[outcome.Unit]("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return outcome.Done()
}
