package repositories

import (
	"context"
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) outcome.Outcome[domain.Account]

	// FindAccountsByCompany retrieves the company's chart of accounts in a
	// stable order.
	FindAccountsByCompany(ctx context.Context, companyID string) outcome.Outcome[[]domain.Account]
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) outcome.Outcome[outcome.Unit]

	DeactivateAccount(ctx context.Context, accountID, actorUserID string, now time.Time) outcome.Outcome[outcome.Unit]
}

// AccountRepository combines all account repository interfaces.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
