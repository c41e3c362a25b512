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

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{BaseRepository{Pool: db}}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, name, role, password_hash, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Email,
		&m.Name,
		&m.Role,
		&m.PasswordHash,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) outcome.Outcome[domain.User] {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return outcome.Failf[domain.User]("%w: user %s", apperrors.ErrNotFound, userID)
		}
		return outcome.Failf[domain.User]("failed to find user by ID %s: %w", userID, err)
	}
	return outcome.Ok(mapping.ToDomainUser(m))
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) outcome.Outcome[domain.User] {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1);`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return outcome.Fail[domain.User](fmt.Errorf("%w: no user with that email", apperrors.ErrNotFound))
		}
		return outcome.Failf[domain.User]("failed to find user by email: %w", err)
	}
	return outcome.Ok(mapping.ToDomainUser(m))
}

func (r *PgxUserRepository) ListUsers(ctx context.Context) outcome.Outcome[[]domain.User] {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, user_id;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return outcome.Failf[[]domain.User]("failed to list users: %w", err)
	}
	defer rows.Close()

	var ms []models.User
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return outcome.Failf[[]domain.User]("failed to scan user row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return outcome.Failf[[]domain.User]("failed while iterating user rows: %w", err)
	}
	return outcome.Ok(mapping.ToDomainUserSlice(ms))
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) outcome.Outcome[outcome.Unit] {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Email, m.Name, m.Role, m.PasswordHash, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return outcome.Fail[outcome.Unit](fmt.Errorf("%w: email is already registered", apperrors.ErrDuplicate))
		}
		return outcome.Failf[outcome.Unit]("failed to save user %s: %w", m.UserID, err)
	}
	return outcome.Done()
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) outcome.Outcome[outcome.Unit] {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET email = $2, name = $3, role = $4, password_hash = $5, is_active = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Email, m.Name, m.Role, m.PasswordHash, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return outcome.Failf[outcome.Unit]("failed to update user %s: %w", m.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return outcome.Failf[outcome.Unit]("%w: user %s", apperrors.ErrNotFound, m.UserID)
	}
	return outcome.Done()
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) outcome.Outcome[outcome.Unit] {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return outcome.Failf[outcome.Unit]("failed to delete user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return outcome.Failf[outcome.Unit]("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return outcome.Done()
}
