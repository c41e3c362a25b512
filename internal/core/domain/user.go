package domain

// UserRole defines the platform-level role of a user.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleAccountant UserRole = "ACCOUNTANT"
	RoleUser       UserRole = "USER"
)

// ValidRole reports whether role is one of the known platform roles.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleAdmin, RoleAccountant, RoleUser:
		return true
	}
	return false
}

// User represents a platform identity. Passwords are stored only as bcrypt
// hashes; the plaintext never reaches the domain.
type User struct {
	UserID       string   `json:"userID"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}

// CanManageUsers reports whether the user may administer other users.
func (u User) CanManageUsers() bool {
	return u.Role == RoleAdmin
}
