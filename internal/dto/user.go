package dto

import (
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
)

// User management actions dispatched by ManageUser.
const (
	UserActionActivate   = "activate"
	UserActionDeactivate = "deactivate"
	UserActionDelete     = "delete"
	UserActionChangeRole = "change_role"
)

// ManageUserRequest applies one administrative action to a target user.
// NewRole is required only for change_role.
type ManageUserRequest struct {
	Action  string  `json:"action" binding:"required,oneof=activate deactivate delete change_role"`
	NewRole *string `json:"newRole,omitempty" binding:"omitempty,oneof=ADMIN ACCOUNTANT USER"`
}

// UserResponse defines the data returned for a user. The password hash never
// leaves the service layer.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses converts a slice of users.
func ToUserResponses(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = ToUserResponse(u)
	}
	return responses
}
