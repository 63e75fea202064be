package domain

import "time"

// Role names seeded at bootstrap. The vocabulary is fixed but extensible:
// new roles can be added to the roles table without code changes, and the
// authorization middleware works with arbitrary names.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleUser    = "User"
)

// DefaultRole is assigned to self-registered users.
const DefaultRole = RoleUser

// User represents an account in the system.
// Roles is populated only when the user was loaded with roles.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	Roles        []Role     `json:"roles,omitempty"`
}

// RoleNames returns the names of the user's roles in assignment order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// PrimaryRole returns the first assigned role, or DefaultRole if the user
// has none. Roles are ordered by assignment time, so for users created
// through the registration flows this is the role they were created with.
func (u *User) PrimaryRole() string {
	if len(u.Roles) == 0 {
		return DefaultRole
	}
	return u.Roles[0].Name
}

// Role represents a named permission group.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserRole links a user to a role. A (user, role) pair exists at most once;
// deleting either side cascades to the link.
type UserRole struct {
	UserID     string    `json:"user_id"`
	RoleID     string    `json:"role_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// AuthResult is returned by the authentication flows. It is never persisted.
type AuthResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
