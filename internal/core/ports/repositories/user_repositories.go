package repositories

import (
	"context"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// UserReader defines read operations for user data.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) outcome.Outcome[domain.User]

	FindUserByEmail(ctx context.Context, email string) outcome.Outcome[domain.User]

	ListUsers(ctx context.Context) outcome.Outcome[[]domain.User]
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) outcome.Outcome[outcome.Unit]

	UpdateUser(ctx context.Context, user domain.User) outcome.Outcome[outcome.Unit]

	DeleteUser(ctx context.Context, userID string) outcome.Outcome[outcome.Unit]
}

// UserRepository combines all user repository interfaces.
type UserRepository interface {
	UserReader
	UserWriter
}
