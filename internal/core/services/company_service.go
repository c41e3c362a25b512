package services

import (
	"context"
	"errors"
	"fmt"
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

// companyService orchestrates the company lifecycle and onboarding.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepository
	userRepo    portsrepo.UserReader
	now         func() time.Time
	newID       func() string
}

// CompanyServiceOption configures optional dependencies of the company service.
type CompanyServiceOption func(*companyService)

// WithCompanyAuthorizer sets the authorizer used for access checks.
func WithCompanyAuthorizer(a portssvc.AuthorizerSvc) CompanyServiceOption {
	return func(s *companyService) {
		s.Authorizer = a
	}
}

// WithCompanyClock overrides the clock, for tests.
func WithCompanyClock(now func() time.Time) CompanyServiceOption {
	return func(s *companyService) {
		s.now = now
	}
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo portsrepo.CompanyRepository, userRepo portsrepo.UserReader, opts ...CompanyServiceOption) portssvc.CompanySvcFacade {
	s := &companyService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany creates the caller's company. A user owns at most one
// company; a second create is rejected as a duplicate before anything is
// persisted. An optional opening balance is recorded after the company row.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) outcome.Outcome[dto.CompanyResponse] {
	existing := s.companyRepo.FindCompanyByUser(ctx, creatorUserID)
	if existing.IsSuccess() {
		return outcome.Failf[dto.CompanyResponse]("%w: user %s already owns company %s", apperrors.ErrDuplicate, creatorUserID, existing.Value().CompanyID)
	}
	if !errors.Is(existing.Err(), apperrors.ErrNotFound) {
		s.LogError(ctx, existing.Err(), "failed to check for existing company", slog.String("user_id", creatorUserID))
		return outcome.Fail[dto.CompanyResponse](existing.Err())
	}

	built := domain.NewCompany(domain.NewCompanyParams{
		CompanyID:    s.newID(),
		OwnerUserID:  creatorUserID,
		Name:         req.Name,
		BusinessType: domain.BusinessType(req.BusinessType),
		CreatedBy:    creatorUserID,
		Now:          s.now(),
	})
	if built.IsFailure() {
		return outcome.Fail[dto.CompanyResponse](built.Err())
	}
	company := built.Value()

	if saved := s.companyRepo.SaveCompany(ctx, company); saved.IsFailure() {
		s.LogError(ctx, saved.Err(), "failed to persist company", slog.String("company_id", company.CompanyID))
		return outcome.Fail[dto.CompanyResponse](saved.Err())
	}

	if req.OpeningBalance != nil {
		asOf := s.now()
		if req.OpeningBalanceAsOf != nil {
			asOf = *req.OpeningBalanceAsOf
		}
		ob := domain.OpeningBalance{
			OpeningBalanceID: s.newID(),
			CompanyID:        company.CompanyID,
			Amount:           *req.OpeningBalance,
			AsOf:             asOf,
			AuditFields:      domain.NewAuditFields(creatorUserID, s.now()),
		}
		if saved := s.companyRepo.SaveOpeningBalance(ctx, ob); saved.IsFailure() {
			s.LogError(ctx, saved.Err(), "company created but opening balance was not recorded",
				slog.String("company_id", company.CompanyID))
			return outcome.Fail[dto.CompanyResponse](saved.Err())
		}
	}

	s.LogInfo(ctx, "company created",
		slog.String("company_id", company.CompanyID),
		slog.String("owner_user_id", creatorUserID))
	return outcome.Ok(dto.ToCompanyResponse(company))
}

// GetCompany retrieves a company the caller may access.
func (s *companyService) GetCompany(ctx context.Context, companyID, requestingUserID string) outcome.Outcome[dto.CompanyResponse] {
	if err := s.AuthorizeCompanyAccess(ctx, requestingUserID, companyID); err != nil {
		return outcome.Fail[dto.CompanyResponse](err)
	}
	found := s.companyRepo.FindCompanyByID(ctx, companyID)
	if found.IsFailure() {
		return outcome.Fail[dto.CompanyResponse](found.Err())
	}
	return outcome.Ok(dto.ToCompanyResponse(found.Value()))
}

// GetOwnCompany retrieves the company owned by the caller.
func (s *companyService) GetOwnCompany(ctx context.Context, userID string) outcome.Outcome[dto.CompanyResponse] {
	found := s.companyRepo.FindCompanyByUser(ctx, userID)
	if found.IsFailure() {
		return outcome.Fail[dto.CompanyResponse](found.Err())
	}
	return outcome.Ok(dto.ToCompanyResponse(found.Value()))
}

// AssignAccountant sets the assigned accountant. Admin only; the assignee
// must be an active user holding the ACCOUNTANT or ADMIN role.
func (s *companyService) AssignAccountant(ctx context.Context, companyID string, req dto.AssignAccountantRequest, actorUserID string) outcome.Outcome[dto.CompanyResponse] {
	if err := s.RequirePermission(ctx, actorUserID, PermManageCompanies); err != nil {
		return outcome.Fail[dto.CompanyResponse](err)
	}

	accountant := s.userRepo.FindUserByID(ctx, req.AccountantUserID)
	if accountant.IsFailure() {
		return outcome.Fail[dto.CompanyResponse](accountant.Err())
	}
	assignee := accountant.Value()
	if !assignee.IsActive {
		return outcome.Failf[dto.CompanyResponse]("%w: user %s is deactivated", apperrors.ErrValidation, assignee.UserID)
	}
	if assignee.Role != domain.RoleAccountant && assignee.Role != domain.RoleAdmin {
		return outcome.Failf[dto.CompanyResponse]("%w: user %s does not hold the ACCOUNTANT role", apperrors.ErrValidation, assignee.UserID)
	}

	return s.mutateCompany(ctx, companyID, func(c *domain.Company) error {
		return c.AssignAccountant(req.AccountantUserID, actorUserID, s.now())
	})
}

// RenameCompany changes the display name. The owner or an admin may rename.
func (s *companyService) RenameCompany(ctx context.Context, companyID string, req dto.RenameCompanyRequest, actorUserID string) outcome.Outcome[dto.CompanyResponse] {
	found := s.companyRepo.FindCompanyByID(ctx, companyID)
	if found.IsFailure() {
		return outcome.Fail[dto.CompanyResponse](found.Err())
	}
	company := found.Value()

	if company.OwnerUserID != actorUserID {
		if err := s.RequirePermission(ctx, actorUserID, PermManageCompanies); err != nil {
			return outcome.Fail[dto.CompanyResponse](err)
		}
	}

	if err := company.Rename(req.Name, actorUserID, s.now()); err != nil {
		return outcome.Fail[dto.CompanyResponse](err)
	}
	if updated := s.companyRepo.UpdateCompany(ctx, company); updated.IsFailure() {
		return outcome.Fail[dto.CompanyResponse](updated.Err())
	}
	return outcome.Ok(dto.ToCompanyResponse(company))
}

// DeactivateCompany soft-deletes the company. Admin only.
func (s *companyService) DeactivateCompany(ctx context.Context, companyID, actorUserID string) outcome.Outcome[outcome.Unit] {
	if err := s.RequirePermission(ctx, actorUserID, PermManageCompanies); err != nil {
		return outcome.Fail[outcome.Unit](err)
	}
	mutated := s.mutateCompany(ctx, companyID, func(c *domain.Company) error {
		return c.Deactivate(actorUserID, s.now())
	})
	if mutated.IsFailure() {
		return outcome.Fail[outcome.Unit](mutated.Err())
	}
	s.LogInfo(ctx, "company deactivated", slog.String("company_id", companyID))
	return outcome.Done()
}

// ActivateCompany re-enables a deactivated company. Admin only.
func (s *companyService) ActivateCompany(ctx context.Context, companyID, actorUserID string) outcome.Outcome[outcome.Unit] {
	if err := s.RequirePermission(ctx, actorUserID, PermManageCompanies); err != nil {
		return outcome.Fail[outcome.Unit](err)
	}
	mutated := s.mutateCompany(ctx, companyID, func(c *domain.Company) error {
		return c.Activate(actorUserID, s.now())
	})
	if mutated.IsFailure() {
		return outcome.Fail[outcome.Unit](mutated.Err())
	}
	s.LogInfo(ctx, "company activated", slog.String("company_id", companyID))
	return outcome.Done()
}

// mutateCompany loads a company, applies one entity mutation and persists it.
func (s *companyService) mutateCompany(ctx context.Context, companyID string, mutate func(*domain.Company) error) outcome.Outcome[dto.CompanyResponse] {
	found := s.companyRepo.FindCompanyByID(ctx, companyID)
	if found.IsFailure() {
		return outcome.Fail[dto.CompanyResponse](found.Err())
	}
	company := found.Value()
	if err := mutate(&company); err != nil {
		return outcome.Fail[dto.CompanyResponse](err)
	}
	if updated := s.companyRepo.UpdateCompany(ctx, company); updated.IsFailure() {
		s.LogError(ctx, updated.Err(), "failed to persist company update", slog.String("company_id", companyID))
		return outcome.Fail[dto.CompanyResponse](fmt.Errorf("failed to update company %s: %w", companyID, updated.Err()))
	}
	return outcome.Ok(dto.ToCompanyResponse(company))
}
