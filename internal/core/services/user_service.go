package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	portsrepo "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// userService handles user administration.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
	now      func() time.Time
}

// UserServiceOption configures optional dependencies of the user service.
type UserServiceOption func(*userService)

// WithUserAuthorizer sets the authorizer used for management checks.
func WithUserAuthorizer(a portssvc.AuthorizerSvc) UserServiceOption {
	return func(s *userService) {
		s.Authorizer = a
	}
}

// WithUserClock overrides the clock, for tests.
func WithUserClock(now func() time.Time) UserServiceOption {
	return func(s *userService) {
		s.now = now
	}
}

// NewUserService creates a new user administration service.
func NewUserService(userRepo portsrepo.UserRepository, opts ...UserServiceOption) portssvc.UserSvcFacade {
	s := &userService{
		userRepo: userRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// GetUser retrieves one user. Callers may always read themselves; reading
// anyone else requires management rights.
func (s *userService) GetUser(ctx context.Context, userID, requestingUserID string) outcome.Outcome[dto.UserResponse] {
	if userID != requestingUserID {
		if err := s.requireManagementRights(ctx, requestingUserID, userID); err != nil {
			return outcome.Fail[dto.UserResponse](err)
		}
	}
	found := s.userRepo.FindUserByID(ctx, userID)
	if found.IsFailure() {
		return outcome.Fail[dto.UserResponse](found.Err())
	}
	return outcome.Ok(dto.ToUserResponse(found.Value()))
}

// ListUsers retrieves all users. Admin only.
func (s *userService) ListUsers(ctx context.Context, requestingUserID string) outcome.Outcome[[]dto.UserResponse] {
	if err := s.RequirePermission(ctx, requestingUserID, PermManageUsers); err != nil {
		return outcome.Fail[[]dto.UserResponse](err)
	}
	found := s.userRepo.ListUsers(ctx)
	if found.IsFailure() {
		return outcome.Fail[[]dto.UserResponse](found.Err())
	}
	return outcome.Ok(dto.ToUserResponses(found.Value()))
}

// ManageUser dispatches one administrative action against a target user.
func (s *userService) ManageUser(ctx context.Context, targetUserID string, req dto.ManageUserRequest, actorUserID string) outcome.Outcome[dto.UserResponse] {
	if err := s.requireManagementRights(ctx, actorUserID, targetUserID); err != nil {
		return outcome.Fail[dto.UserResponse](err)
	}

	found := s.userRepo.FindUserByID(ctx, targetUserID)
	if found.IsFailure() {
		return outcome.Fail[dto.UserResponse](found.Err())
	}
	target := found.Value()

	switch req.Action {
	case dto.UserActionActivate:
		return s.setActive(ctx, target, true, actorUserID)
	case dto.UserActionDeactivate:
		return s.setActive(ctx, target, false, actorUserID)
	case dto.UserActionDelete:
		if targetUserID == actorUserID {
			return outcome.Failf[dto.UserResponse]("%w: an admin may not delete their own account", apperrors.ErrValidation)
		}
		if deleted := s.userRepo.DeleteUser(ctx, targetUserID); deleted.IsFailure() {
			return outcome.Fail[dto.UserResponse](deleted.Err())
		}
		s.LogInfo(ctx, "user deleted", slog.String("user_id", targetUserID), slog.String("actor_user_id", actorUserID))
		return outcome.Ok(dto.ToUserResponse(target))
	case dto.UserActionChangeRole:
		return s.changeRole(ctx, target, req.NewRole, actorUserID)
	default:
		return outcome.Failf[dto.UserResponse]("%w: unknown user action %q", apperrors.ErrValidation, req.Action)
	}
}

func (s *userService) requireManagementRights(ctx context.Context, actorUserID, targetUserID string) error {
	if s.Authorizer == nil {
		s.LogDebug(ctx, "No authorizer provided, management rights granted by default",
			slog.String("actor_user_id", actorUserID))
		return nil
	}
	allowed := s.Authorizer.CanManageUser(ctx, actorUserID, targetUserID)
	if allowed.IsFailure() {
		return allowed.Err()
	}
	if !allowed.Value() {
		return fmt.Errorf("%w: user %s may not manage user %s", apperrors.ErrForbidden, actorUserID, targetUserID)
	}
	return nil
}

func (s *userService) setActive(ctx context.Context, target domain.User, active bool, actorUserID string) outcome.Outcome[dto.UserResponse] {
	if target.IsActive == active {
		state := "deactivated"
		if active {
			state = "active"
		}
		return outcome.Failf[dto.UserResponse]("%w: user %s is already %s", apperrors.ErrConflict, target.UserID, state)
	}
	target.IsActive = active
	target.Touch(actorUserID, s.now())
	if updated := s.userRepo.UpdateUser(ctx, target); updated.IsFailure() {
		return outcome.Fail[dto.UserResponse](updated.Err())
	}
	s.LogInfo(ctx, "user activation changed",
		slog.String("user_id", target.UserID),
		slog.Bool("is_active", active))
	return outcome.Ok(dto.ToUserResponse(target))
}

func (s *userService) changeRole(ctx context.Context, target domain.User, newRole *string, actorUserID string) outcome.Outcome[dto.UserResponse] {
	if newRole == nil {
		return outcome.Failf[dto.UserResponse]("%w: newRole is required for change_role", apperrors.ErrValidation)
	}
	role := domain.UserRole(*newRole)
	if !domain.ValidRole(role) {
		return outcome.Failf[dto.UserResponse]("%w: unknown role %q", apperrors.ErrValidation, *newRole)
	}
	if target.UserID == actorUserID {
		return outcome.Failf[dto.UserResponse]("%w: an admin may not change their own role", apperrors.ErrValidation)
	}
	if target.Role == role {
		return outcome.Failf[dto.UserResponse]("%w: user %s already holds role %s", apperrors.ErrConflict, target.UserID, role)
	}

	target.Role = role
	target.Touch(actorUserID, s.now())
	if updated := s.userRepo.UpdateUser(ctx, target); updated.IsFailure() {
		return outcome.Fail[dto.UserResponse](updated.Err())
	}
	s.LogInfo(ctx, "user role changed",
		slog.String("user_id", target.UserID),
		slog.String("role", string(role)))
	return outcome.Ok(dto.ToUserResponse(target))
}
