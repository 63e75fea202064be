package identity

import (
	"context"

	"github.com/srgmoura/product-manager/internal/domain"
)

// Repository defines the interface for credential storage.
//
// Lookups return ErrUserNotFound / ErrRoleNotFound when no row matches.
// CreateUser returns ErrUsernameTaken / ErrEmailTaken when the store's
// unique constraints reject the insert; that signal is authoritative even
// when the pre-insert existence checks passed (two concurrent registrations
// can both pass the checks, only one insert wins).
type Repository interface {
	GetUserByUsername(ctx context.Context, username string, withRoles bool) (*domain.User, error)
	GetUserByID(ctx context.Context, id string, withRoles bool) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *domain.User) error
	GetRoleByName(ctx context.Context, name string) (*domain.Role, error)
	AssignRole(ctx context.Context, userID, roleID string) error
	CountUsers(ctx context.Context) (int, error)
}
