package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/srgmoura/product-manager/internal/domain"
	"github.com/srgmoura/product-manager/internal/identity/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	users         map[string]*domain.User // keyed by username
	roles         map[string]*domain.Role // keyed by name
	assignments   map[string][]string     // userID -> roleIDs
	createUserErr error
	assignRoleErr error
}

func newMockRepository() *mockRepository {
	repo := &mockRepository{
		users:       make(map[string]*domain.User),
		roles:       make(map[string]*domain.Role),
		assignments: make(map[string][]string),
	}
	for i, name := range []string{domain.RoleAdmin, domain.RoleManager, domain.RoleUser} {
		repo.roles[name] = &domain.Role{
			ID:   string(rune('1' + i)),
			Name: name,
		}
	}
	return repo
}

func (m *mockRepository) withRoles(user *domain.User) *domain.User {
	clone := *user
	clone.Roles = nil
	for _, roleID := range m.assignments[user.ID] {
		for _, role := range m.roles {
			if role.ID == roleID {
				clone.Roles = append(clone.Roles, *role)
			}
		}
	}
	return &clone
}

func (m *mockRepository) GetUserByUsername(_ context.Context, username string, withRoles bool) (*domain.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	if withRoles {
		return m.withRoles(u), nil
	}
	return u, nil
}

func (m *mockRepository) GetUserByID(_ context.Context, id string, withRoles bool) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			if withRoles {
				return m.withRoles(u), nil
			}
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := m.users[username]
	return ok, nil
}

func (m *mockRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) CreateUser(_ context.Context, user *domain.User) error {
	if m.createUserErr != nil {
		return m.createUserErr
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockRepository) GetRoleByName(_ context.Context, name string) (*domain.Role, error) {
	if r, ok := m.roles[name]; ok {
		return r, nil
	}
	return nil, ErrRoleNotFound
}

func (m *mockRepository) AssignRole(_ context.Context, userID, roleID string) error {
	if m.assignRoleErr != nil {
		return m.assignRoleErr
	}
	m.assignments[userID] = append(m.assignments[userID], roleID)
	return nil
}

func (m *mockRepository) CountUsers(_ context.Context) (int, error) {
	return len(m.users), nil
}

// mockAuthenticator implements Authenticator for testing.
type mockAuthenticator struct {
	issueErr error
}

func (m *mockAuthenticator) Issue(userID, _, _ string, roles []string) (string, time.Time, error) {
	if m.issueErr != nil {
		return "", time.Time{}, m.issueErr
	}
	return "token-for-" + userID, time.Now().Add(time.Hour), nil
}

func (m *mockAuthenticator) Verify(_ string) (*jwt.Claims, error) {
	return &jwt.Claims{}, nil
}

func seedUser(t *testing.T, repo *mockRepository, username, password, roleName string) *domain.User {
	t.Helper()

	hash, err := HashPassword(password)
	require.NoError(t, err)

	user := &domain.User{
		ID:           "id-" + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
	}
	repo.users[username] = user
	repo.assignments[user.ID] = []string{repo.roles[roleName].ID}
	return user
}

func TestLogin_Success(t *testing.T) {
	repo := newMockRepository()
	seedUser(t, repo, "alice", "password123", domain.RoleManager)

	service := NewService(repo, &mockAuthenticator{})

	result, err := service.Login(context.Background(), LoginInput{
		Username: "alice",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-for-id-alice", result.Token)
	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, "alice@example.com", result.Email)
	assert.Equal(t, domain.RoleManager, result.Role)
}

func TestLogin_UnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	repo := newMockRepository()
	seedUser(t, repo, "alice", "password123", domain.RoleUser)

	service := NewService(repo, &mockAuthenticator{})

	_, unknownErr := service.Login(context.Background(), LoginInput{
		Username: "nobody",
		Password: "password123",
	})
	_, wrongErr := service.Login(context.Background(), LoginInput{
		Username: "alice",
		Password: "wrong-password",
	})

	// Both failures must be indistinguishable to prevent account enumeration.
	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr)
}

func TestRegister_AssignsDefaultRole(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, &mockAuthenticator{})

	result, err := service.Register(context.Background(), RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, result.Role)
	assert.NotEmpty(t, result.Token)

	// The stored password is hashed, never plaintext.
	stored := repo.users["bob"]
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.True(t, VerifyPassword("password123", stored.PasswordHash))
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := newMockRepository()
	seedUser(t, repo, "bob", "password123", domain.RoleUser)

	service := NewService(repo, &mockAuthenticator{})

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "bob",
		Email:    "other@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := newMockRepository()
	seedUser(t, repo, "bob", "password123", domain.RoleUser)

	service := NewService(repo, &mockAuthenticator{})

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "robert",
		Email:    "bob@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_ConcurrentDuplicateSurfacesStoreError(t *testing.T) {
	repo := newMockRepository()
	// Existence checks pass, but the insert loses the race.
	repo.createUserErr = ErrUsernameTaken

	service := NewService(repo, &mockAuthenticator{})

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_MissingDefaultRoleIsServerError(t *testing.T) {
	repo := newMockRepository()
	delete(repo.roles, domain.RoleUser)

	service := NewService(repo, &mockAuthenticator{})

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "password123",
	})

	require.Error(t, err)
	// Not a client-facing sentinel: handlers map it to a 500.
	assert.NotErrorIs(t, err, ErrRoleNotFound)
}

func TestCreateUser_WithRequestedRole(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, &mockAuthenticator{})

	result, err := service.CreateUser(context.Background(), CreateUserInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "password123",
		Role:     domain.RoleManager,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, result.Role)
}

func TestCreateUser_NormalizesRoleName(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, &mockAuthenticator{})

	result, err := service.CreateUser(context.Background(), CreateUserInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "password123",
		Role:     "manager",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, result.Role)
}

func TestCreateUser_UnknownRole(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, &mockAuthenticator{})

	_, err := service.CreateUser(context.Background(), CreateUserInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "password123",
		Role:     "Superuser",
	})

	assert.ErrorIs(t, err, ErrRoleNotFound)
	// The unknown role is detected before any write happens.
	assert.Empty(t, repo.users)
}

func TestCreateUser_TokenIssueFailure(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, &mockAuthenticator{issueErr: errors.New("signing failure")})

	_, err := service.CreateUser(context.Background(), CreateUserInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "password123",
		Role:     domain.RoleUser,
	})

	assert.Error(t, err)
}
