package services

import (
	"context"

	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// AuthSvcFacade is the identity collaborator: registration, credential
// checks and the password lifecycle.
type AuthSvcFacade interface {
	// Signup registers a new user with the default USER role.
	Signup(ctx context.Context, req dto.SignupRequest) outcome.Outcome[dto.UserResponse]

	// Login verifies credentials and issues a signed access token.
	Login(ctx context.Context, req dto.LoginRequest) outcome.Outcome[dto.LoginResponse]

	// Logout ends the session. Access tokens are stateless, so this only
	// records the event; clients discard the token.
	Logout(ctx context.Context, userID string) outcome.Outcome[outcome.Unit]

	// ChangePassword rotates the caller's password after verifying the
	// current one.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) outcome.Outcome[outcome.Unit]
}
