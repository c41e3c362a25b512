package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	portsrepo "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/internal/utils"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// AuthConfig carries token-signing parameters into the auth service.
type AuthConfig struct {
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
}

// authService handles registration, login and the password lifecycle.
type authService struct {
	BaseService
	userRepo portsrepo.UserRepository
	cfg      AuthConfig
	now      func() time.Time
	newID    func() string
}

// AuthServiceOption configures optional dependencies of the auth service.
type AuthServiceOption func(*authService)

// WithAuthClock overrides the clock, for tests.
func WithAuthClock(now func() time.Time) AuthServiceOption {
	return func(s *authService) {
		s.now = now
	}
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo portsrepo.UserRepository, cfg AuthConfig, opts ...AuthServiceOption) portssvc.AuthSvcFacade {
	s := &authService{
		userRepo: userRepo,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Signup registers a new user with the default USER role.
func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) outcome.Outcome[dto.UserResponse] {
	existing := s.userRepo.FindUserByEmail(ctx, req.Email)
	if existing.IsSuccess() {
		return outcome.Failf[dto.UserResponse]("%w: email is already registered", apperrors.ErrDuplicate)
	}
	if !errors.Is(existing.Err(), apperrors.ErrNotFound) {
		s.LogError(ctx, existing.Err(), "failed to check for existing email")
		return outcome.Fail[dto.UserResponse](existing.Err())
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password")
		return outcome.Fail[dto.UserResponse](apperrors.ErrInternal)
	}

	user := domain.User{
		UserID:       s.newID(),
		Email:        req.Email,
		Name:         req.Name,
		Role:         domain.RoleUser,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields("", s.now()),
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if saved := s.userRepo.SaveUser(ctx, user); saved.IsFailure() {
		s.LogError(ctx, saved.Err(), "failed to persist new user")
		return outcome.Fail[dto.UserResponse](saved.Err())
	}

	s.LogInfo(ctx, "user signed up", slog.String("user_id", user.UserID))
	return outcome.Ok(dto.ToUserResponse(user))
}

// Login verifies credentials and issues a signed access token. A wrong email
// and a wrong password produce the same failure, so the response does not
// reveal which accounts exist.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) outcome.Outcome[dto.LoginResponse] {
	found := s.userRepo.FindUserByEmail(ctx, req.Email)
	if found.IsFailure() {
		if errors.Is(found.Err(), apperrors.ErrNotFound) {
			return outcome.Failf[dto.LoginResponse]("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return outcome.Fail[dto.LoginResponse](found.Err())
	}
	user := found.Value()

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return outcome.Failf[dto.LoginResponse]("%w: invalid credentials", apperrors.ErrForbidden)
	}
	if !user.IsActive {
		return outcome.Failf[dto.LoginResponse]("%w: account is deactivated", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "failed to sign access token", slog.String("user_id", user.UserID))
		return outcome.Fail[dto.LoginResponse](apperrors.ErrInternal)
	}

	s.LogInfo(ctx, "user logged in", slog.String("user_id", user.UserID))
	return outcome.Ok(dto.LoginResponse{
		Token:     token,
		ExpiresAt: s.now().Add(s.cfg.JWTExpiryDuration),
		User:      dto.ToUserResponse(user),
	})
}

// Logout records the end of a session. Access tokens are stateless, so the
// server has nothing to revoke; clients discard the token.
func (s *authService) Logout(ctx context.Context, userID string) outcome.Outcome[outcome.Unit] {
	s.LogInfo(ctx, "user logged out", slog.String("user_id", userID))
	return outcome.Done()
}

// ChangePassword rotates the caller's password after verifying the current one.
func (s *authService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) outcome.Outcome[outcome.Unit] {
	found := s.userRepo.FindUserByID(ctx, userID)
	if found.IsFailure() {
		return outcome.Fail[outcome.Unit](found.Err())
	}
	user := found.Value()

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return outcome.Failf[outcome.Unit]("%w: current password is incorrect", apperrors.ErrForbidden)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.LogError(ctx, err, "failed to hash new password", slog.String("user_id", userID))
		return outcome.Fail[outcome.Unit](apperrors.ErrInternal)
	}
	user.PasswordHash = hash
	user.Touch(userID, s.now())

	if updated := s.userRepo.UpdateUser(ctx, user); updated.IsFailure() {
		return outcome.Fail[outcome.Unit](updated.Err())
	}
	s.LogInfo(ctx, "password changed", slog.String("user_id", userID))
	return outcome.Done()
}
