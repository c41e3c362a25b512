package repositories

import (
	"context"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// CompanyReader defines read operations for company data.
type CompanyReader interface {
	FindCompanyByID(ctx context.Context, companyID string) outcome.Outcome[domain.Company]

	// FindCompanyByUser retrieves the company owned by a user. The failure
	// branch carries apperrors.ErrNotFound when the user owns none; a user
	// owns at most one company.
	FindCompanyByUser(ctx context.Context, userID string) outcome.Outcome[domain.Company]

	FindCompaniesByAccountant(ctx context.Context, accountantUserID string) outcome.Outcome[[]domain.Company]
}

// CompanyWriter defines write operations for company data.
type CompanyWriter interface {
	SaveCompany(ctx context.Context, company domain.Company) outcome.Outcome[outcome.Unit]

	UpdateCompany(ctx context.Context, company domain.Company) outcome.Outcome[outcome.Unit]

	DeleteCompany(ctx context.Context, companyID string) outcome.Outcome[outcome.Unit]
}

// OpeningBalanceSink records the opening balance captured at onboarding.
// It is a separate write-once sink, not part of the company row.
type OpeningBalanceSink interface {
	SaveOpeningBalance(ctx context.Context, ob domain.OpeningBalance) outcome.Outcome[outcome.Unit]
}

// CompanyRepository combines all company repository interfaces.
type CompanyRepository interface {
	CompanyReader
	CompanyWriter
	OpeningBalanceSink
}
