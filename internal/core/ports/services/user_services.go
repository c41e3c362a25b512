package services

import (
	"context"

	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// UserSvcFacade defines user administration operations.
type UserSvcFacade interface {
	// GetUser retrieves one user.
	GetUser(ctx context.Context, userID, requestingUserID string) outcome.Outcome[dto.UserResponse]

	// ListUsers retrieves all users; admin only.
	ListUsers(ctx context.Context, requestingUserID string) outcome.Outcome[[]dto.UserResponse]

	// ManageUser dispatches one administrative action (activate, deactivate,
	// delete, change_role) against a target user. The caller must be allowed
	// to manage users; an admin may not change their own role.
	ManageUser(ctx context.Context, targetUserID string, req dto.ManageUserRequest, actorUserID string) outcome.Outcome[dto.UserResponse]
}

// AuthorizerSvc is the role-based permission collaborator consulted by the
// orchestrators before touching another principal's data.
type AuthorizerSvc interface {
	// CanManageUser reports whether actor may administer target.
	CanManageUser(ctx context.Context, actorUserID, targetUserID string) outcome.Outcome[bool]

	// CanAccessCompany reports whether the user may read or write a
	// company's books: its owner, its assigned accountant, or an admin.
	CanAccessCompany(ctx context.Context, userID, companyID string) outcome.Outcome[bool]

	// HasPermission reports whether the user's role grants the named
	// permission.
	HasPermission(ctx context.Context, userID, permission string) outcome.Outcome[bool]
}
