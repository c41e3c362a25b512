package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	portsrepo "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// Named permissions checked through AuthorizerSvc.HasPermission.
const (
	PermManageUsers     = "users:manage"
	PermManageCompanies = "companies:manage"
)

// authorizationService answers role-based access questions from the user and
// company tables. It deliberately has no BaseService embed: it is the
// authorizer everything else embeds.
type authorizationService struct {
	userRepo    portsrepo.UserReader
	companyRepo portsrepo.CompanyReader
}

// NewAuthorizationService creates the role-based permission service.
func NewAuthorizationService(userRepo portsrepo.UserReader, companyRepo portsrepo.CompanyReader) portssvc.AuthorizerSvc {
	return &authorizationService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
	}
}

var _ portssvc.AuthorizerSvc = (*authorizationService)(nil)

func (s *authorizationService) activeUser(ctx context.Context, userID string) (domain.User, error) {
	found := s.userRepo.FindUserByID(ctx, userID)
	if found.IsFailure() {
		if errors.Is(found.Err(), apperrors.ErrNotFound) {
			return domain.User{}, fmt.Errorf("%w: user %s not found", apperrors.ErrForbidden, userID)
		}
		return domain.User{}, found.Err()
	}
	user := found.Value()
	if !user.IsActive {
		return domain.User{}, fmt.Errorf("%w: user %s is deactivated", apperrors.ErrForbidden, userID)
	}
	return user, nil
}

// CanManageUser reports whether actor may administer target. Only active
// admins manage users; nobody needs special rights to look at themselves,
// but that shortcut belongs to the caller, not here.
func (s *authorizationService) CanManageUser(ctx context.Context, actorUserID, targetUserID string) outcome.Outcome[bool] {
	actor, err := s.activeUser(ctx, actorUserID)
	if err != nil {
		return outcome.Fail[bool](err)
	}
	return outcome.Ok(actor.CanManageUsers())
}

// CanAccessCompany reports whether the user may read or write the company's
// books: its owner, its assigned accountant, or an admin.
func (s *authorizationService) CanAccessCompany(ctx context.Context, userID, companyID string) outcome.Outcome[bool] {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return outcome.Fail[bool](err)
	}
	if user.Role == domain.RoleAdmin {
		return outcome.Ok(true)
	}

	found := s.companyRepo.FindCompanyByID(ctx, companyID)
	if found.IsFailure() {
		return outcome.Fail[bool](found.Err())
	}
	company := found.Value()

	if company.OwnerUserID == userID {
		return outcome.Ok(true)
	}
	if company.AccountantUserID != nil && *company.AccountantUserID == userID {
		return outcome.Ok(true)
	}
	return outcome.Ok(false)
}

// HasPermission reports whether the user's role grants the named permission.
// Unknown permissions are denied and logged rather than failed, so a typo in
// a caller shows up as a 403 instead of a 500.
func (s *authorizationService) HasPermission(ctx context.Context, userID, permission string) outcome.Outcome[bool] {
	user, err := s.activeUser(ctx, userID)
	if err != nil {
		return outcome.Fail[bool](err)
	}

	switch permission {
	case PermManageUsers, PermManageCompanies:
		return outcome.Ok(user.Role == domain.RoleAdmin)
	default:
		slog.Default().Warn("unknown permission requested", slog.String("permission", permission), slog.String("user_id", userID))
		return outcome.Ok(false)
	}
}
