package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.AuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// AuthorizeCompanyAccess checks that the user may read or write the
// company's books. Without an authorizer access is granted by default,
// which only happens in tests that exercise a single service in isolation.
func (s *BaseService) AuthorizeCompanyAccess(ctx context.Context, userID, companyID string) error {
	if s.Authorizer == nil {
		s.LogDebug(ctx, "No authorizer provided, access granted by default",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil
	}
	allowed := s.Authorizer.CanAccessCompany(ctx, userID, companyID)
	if allowed.IsFailure() {
		return allowed.Err()
	}
	if !allowed.Value() {
		return fmt.Errorf("%w: user %s may not access company %s", apperrors.ErrForbidden, userID, companyID)
	}
	return nil
}

// RequirePermission checks that the user's role grants the named permission.
func (s *BaseService) RequirePermission(ctx context.Context, userID, permission string) error {
	if s.Authorizer == nil {
		s.LogDebug(ctx, "No authorizer provided, permission granted by default",
			slog.String("user_id", userID),
			slog.String("permission", permission))
		return nil
	}
	allowed := s.Authorizer.HasPermission(ctx, userID, permission)
	if allowed.IsFailure() {
		return allowed.Err()
	}
	if !allowed.Value() {
		return fmt.Errorf("%w: user %s lacks permission %s", apperrors.ErrForbidden, userID, permission)
	}
	return nil
}
