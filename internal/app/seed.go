package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/srgmoura/product-manager/internal/config"
	"github.com/srgmoura/product-manager/internal/domain"
	"github.com/srgmoura/product-manager/internal/identity"
)

// seedDefaultUsers creates one account per role when the users table is
// empty and seeding is enabled. Passwords come from configuration and are
// never logged.
func seedDefaultUsers(ctx context.Context, svc *identity.Service, repo identity.Repository, cfg config.SeedConfig) error {
	if !cfg.Enabled {
		return nil
	}

	count, err := repo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		slog.Info("skipping user seeding, users already exist", "count", count)
		return nil
	}

	accounts := []struct {
		username string
		email    string
		password string
		role     string
	}{
		{"admin", "admin@productmanager.local", cfg.AdminPassword, domain.RoleAdmin},
		{"manager", "manager@productmanager.local", cfg.ManagerPassword, domain.RoleManager},
		{"user", "user@productmanager.local", cfg.UserPassword, domain.RoleUser},
	}

	for _, acc := range accounts {
		_, err := svc.CreateUser(ctx, identity.CreateUserInput{
			Username: acc.username,
			Email:    acc.email,
			Password: acc.password,
			Role:     acc.role,
		})
		if err != nil {
			// Another instance may have seeded concurrently.
			if errors.Is(err, identity.ErrUsernameTaken) || errors.Is(err, identity.ErrEmailTaken) {
				slog.Info("seed account already exists", "username", acc.username)
				continue
			}
			return fmt.Errorf("seed user %s: %w", acc.username, err)
		}
		slog.Info("seeded default account", "username", acc.username, "role", acc.role)
	}

	return nil
}
