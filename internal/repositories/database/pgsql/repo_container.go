package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository against one
// connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	return portsrepo.RepositoryProvider{
		UserRepo:     newPgxUserRepository(dbPool),
		CompanyRepo:  newPgxCompanyRepository(dbPool),
		AccountRepo:  accountRepo,
		DocumentRepo: newPgxDocumentRepository(dbPool),
		JournalRepo:  newPgxJournalRepository(dbPool, accountRepo),
	}
}
