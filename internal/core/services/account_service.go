package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	portsrepo "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// accountService manages a company's chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	now         func() time.Time
	newID       func() string
}

// AccountServiceOption configures optional dependencies of the account service.
type AccountServiceOption func(*accountService)

// WithAccountAuthorizer sets the authorizer used for access checks.
func WithAccountAuthorizer(a portssvc.AuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.Authorizer = a
	}
}

// WithAccountClock overrides the clock, for tests.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepository, opts ...AccountServiceOption) portssvc.AccountSvcFacade {
	s := &accountService{
		accountRepo: accountRepo,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount adds an account to the company's chart.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, actorUserID string) outcome.Outcome[dto.AccountResponse] {
	if err := s.AuthorizeCompanyAccess(ctx, actorUserID, companyID); err != nil {
		return outcome.Fail[dto.AccountResponse](err)
	}

	built := domain.NewAccount(domain.NewAccountParams{
		AccountID:   s.newID(),
		CompanyID:   companyID,
		Name:        req.Name,
		AccountType: domain.AccountType(req.AccountType),
		Description: req.Description,
		CreatedBy:   actorUserID,
		Now:         s.now(),
	})
	if built.IsFailure() {
		return outcome.Fail[dto.AccountResponse](built.Err())
	}
	account := built.Value()

	if saved := s.accountRepo.SaveAccount(ctx, account); saved.IsFailure() {
		s.LogError(ctx, saved.Err(), "failed to persist account", slog.String("account_id", account.AccountID))
		return outcome.Fail[dto.AccountResponse](saved.Err())
	}

	s.LogInfo(ctx, "account created",
		slog.String("account_id", account.AccountID),
		slog.String("company_id", companyID),
		slog.String("account_type", string(account.AccountType)))
	return outcome.Ok(dto.ToAccountResponse(account))
}

// ListAccounts retrieves the company's chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context, companyID, requestingUserID string) outcome.Outcome[[]dto.AccountResponse] {
	if err := s.AuthorizeCompanyAccess(ctx, requestingUserID, companyID); err != nil {
		return outcome.Fail[[]dto.AccountResponse](err)
	}
	found := s.accountRepo.FindAccountsByCompany(ctx, companyID)
	if found.IsFailure() {
		return outcome.Fail[[]dto.AccountResponse](found.Err())
	}
	return outcome.Ok(dto.ToAccountResponses(found.Value()))
}

// DeactivateAccount marks an account inactive. The account keeps its posted
// lines; it just stops accepting new ones.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID, accountID, actorUserID string) outcome.Outcome[outcome.Unit] {
	if err := s.AuthorizeCompanyAccess(ctx, actorUserID, companyID); err != nil {
		return outcome.Fail[outcome.Unit](err)
	}

	found := s.accountRepo.FindAccountByID(ctx, accountID)
	if found.IsFailure() {
		return outcome.Fail[outcome.Unit](found.Err())
	}
	account := found.Value()
	if account.CompanyID != companyID {
		return outcome.Failf[outcome.Unit]("%w: account %s not found in company chart", apperrors.ErrNotFound, accountID)
	}
	if !account.IsActive {
		return outcome.Failf[outcome.Unit]("%w: account %s is already deactivated", apperrors.ErrConflict, accountID)
	}

	if deactivated := s.accountRepo.DeactivateAccount(ctx, accountID, actorUserID, s.now()); deactivated.IsFailure() {
		return outcome.Fail[outcome.Unit](deactivated.Err())
	}
	s.LogInfo(ctx, "account deactivated", slog.String("account_id", accountID))
	return outcome.Done()
}
