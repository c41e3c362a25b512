package services

import (
	"context"

	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// CompanySvcFacade defines company lifecycle operations.
type CompanySvcFacade interface {
	// CreateCompany creates the caller's company, enforcing the
	// one-company-per-user rule, and optionally records an opening balance.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) outcome.Outcome[dto.CompanyResponse]

	// GetCompany retrieves a company the caller may access.
	GetCompany(ctx context.Context, companyID, requestingUserID string) outcome.Outcome[dto.CompanyResponse]

	// GetOwnCompany retrieves the company owned by the caller.
	GetOwnCompany(ctx context.Context, userID string) outcome.Outcome[dto.CompanyResponse]

	// AssignAccountant sets the assigned accountant; admin only.
	AssignAccountant(ctx context.Context, companyID string, req dto.AssignAccountantRequest, actorUserID string) outcome.Outcome[dto.CompanyResponse]

	// RenameCompany changes the display name.
	RenameCompany(ctx context.Context, companyID string, req dto.RenameCompanyRequest, actorUserID string) outcome.Outcome[dto.CompanyResponse]

	// DeactivateCompany soft-deletes the company; admin only.
	DeactivateCompany(ctx context.Context, companyID, actorUserID string) outcome.Outcome[outcome.Unit]

	// ActivateCompany re-enables a deactivated company; admin only.
	ActivateCompany(ctx context.Context, companyID, actorUserID string) outcome.Outcome[outcome.Unit]
}

// AccountSvcFacade defines chart-of-accounts operations.
type AccountSvcFacade interface {
	// CreateAccount adds an account to a company's chart.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, actorUserID string) outcome.Outcome[dto.AccountResponse]

	// ListAccounts retrieves the company's chart of accounts.
	ListAccounts(ctx context.Context, companyID, requestingUserID string) outcome.Outcome[[]dto.AccountResponse]

	// DeactivateAccount marks an account inactive.
	DeactivateAccount(ctx context.Context, companyID, accountID, actorUserID string) outcome.Outcome[outcome.Unit]
}
