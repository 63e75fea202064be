// Package identity implements authentication: login, registration,
// admin-driven user creation, and token validation.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/srgmoura/product-manager/internal/domain"
	"github.com/srgmoura/product-manager/internal/identity/jwt"
	"github.com/srgmoura/product-manager/internal/pkg/ctxlog"
)

// Authenticator issues and verifies access tokens.
type Authenticator interface {
	Issue(userID, username, email string, roles []string) (token string, expiresAt time.Time, err error)
	Verify(token string) (*jwt.Claims, error)
}

// Service implements the authentication flows.
type Service struct {
	repo Repository
	auth Authenticator

	roleCaser cases.Caser
}

// NewService creates a new identity service.
func NewService(repo Repository, auth Authenticator) *Service {
	return &Service{
		repo: repo,
		auth: auth,
		// Role names are stored capitalized ("Admin"); accept any casing
		// from admin requests.
		roleCaser: cases.Title(language.English),
	}
}

// LoginInput holds credentials for Login.
type LoginInput struct {
	Username string
	Password string
}

// RegisterInput holds data for self-registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// CreateUserInput holds data for admin-driven user creation.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Login verifies credentials and issues a token. An unknown username and a
// wrong password both return ErrInvalidCredentials so that callers cannot
// enumerate accounts.
func (s *Service) Login(ctx context.Context, input LoginInput) (*domain.AuthResult, error) {
	user, err := s.repo.GetUserByUsername(ctx, input.Username, true)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			ctxlog.FromContext(ctx).Warn("login attempt for unknown username", "username", input.Username)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !VerifyPassword(input.Password, user.PasswordHash) {
		ctxlog.FromContext(ctx).Warn("login attempt with wrong password", "username", input.Username)
		return nil, ErrInvalidCredentials
	}

	return s.authResult(user)
}

// Register creates a user with the default role and issues a token.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.AuthResult, error) {
	if err := s.checkAvailability(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	role, err := s.repo.GetRoleByName(ctx, domain.DefaultRole)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			// The default role is seeded at bootstrap; its absence means the
			// store is misconfigured, not that the client did anything wrong.
			return nil, fmt.Errorf("default role %q is missing from the store", domain.DefaultRole)
		}
		return nil, fmt.Errorf("find default role: %w", err)
	}

	result, err := s.createWithRole(ctx, input.Username, input.Email, input.Password, role)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Info("user registered", "username", input.Username)
	return result, nil
}

// CreateUser creates a user with an explicitly requested role. An unknown
// role name is a client error (ErrRoleNotFound), unlike the missing default
// role in Register which is a server misconfiguration.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*domain.AuthResult, error) {
	if err := s.checkAvailability(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	role, err := s.repo.GetRoleByName(ctx, s.roleCaser.String(input.Role))
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}

	result, err := s.createWithRole(ctx, input.Username, input.Email, input.Password, role)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Info("user created by admin", "username", input.Username, "role", role.Name)
	return result, nil
}

// GetUserByID loads a user with roles.
func (s *Service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, id, true)
}

// ValidateToken verifies an access token and returns the subject and role
// claims. Used by the authorization middleware.
func (s *Service) ValidateToken(_ context.Context, token string) (userID string, roles []string, err error) {
	claims, err := s.auth.Verify(token)
	if err != nil {
		return "", nil, err
	}
	return claims.Subject, claims.Roles, nil
}

// checkAvailability rejects usernames and emails that are already in use.
// This is a best-effort pre-check: the store's unique constraints remain
// the authoritative duplicate signal (see Repository.CreateUser).
func (s *Service) checkAvailability(ctx context.Context, username, email string) error {
	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		return ErrUsernameTaken
	}

	taken, err = s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}

// createWithRole persists the user, links the role, and re-reads the user
// with roles populated before issuing a token. A failing re-read means the
// write did not land and is surfaced as a server-side failure.
func (s *Service) createWithRole(ctx context.Context, username, email, password string, role *domain.Role) (*domain.AuthResult, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		// ErrUsernameTaken / ErrEmailTaken pass through: a concurrent
		// registration may have won the race after checkAvailability.
		return nil, err
	}

	if err := s.repo.AssignRole(ctx, user.ID, role.ID); err != nil {
		return nil, fmt.Errorf("assign role %q: %w", role.Name, err)
	}

	created, err := s.repo.GetUserByID(ctx, user.ID, true)
	if err != nil {
		return nil, fmt.Errorf("reload user after create: %w", err)
	}

	return s.authResult(created)
}

func (s *Service) authResult(user *domain.User) (*domain.AuthResult, error) {
	token, expiresAt, err := s.auth.Issue(user.ID, user.Username, user.Email, user.RoleNames())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &domain.AuthResult{
		Token:     token,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.PrimaryRole(),
		ExpiresAt: expiresAt,
	}, nil
}
