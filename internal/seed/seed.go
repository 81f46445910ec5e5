package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edutech/studify/internal/app/models"
	"github.com/edutech/studify/internal/app/repositories"
	"github.com/edutech/studify/internal/config"
	pkgauth "github.com/edutech/studify/internal/pkg/auth"
	"github.com/edutech/studify/internal/pkg/logger"
)

// CreateDefaultAdmin creates the bootstrap administrator account on first
// start. Without it a fresh database has no account able to create others.
// Skipped when no admin password is configured or the account already
// exists.
func CreateDefaultAdmin(ctx context.Context, pool *pgxpool.Pool, cfg config.SeedConfig) error {
	if cfg.AdminPassword == "" {
		logger.Warn().Msg("No seed admin password configured, skipping admin bootstrap")
		return nil
	}

	users := repositories.NewUserRepository(pool)

	if _, err := users.GetByUsernameOrEmail(ctx, cfg.AdminUsername); err == nil {
		logger.Debug().Str("username", cfg.AdminUsername).Msg("Seed admin already exists")
		return nil
	}

	hash, err := pkgauth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing seed admin password: %w", err)
	}

	admin := &models.User{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: hash,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating seed admin: %w", err)
	}

	logger.Info().Str("username", cfg.AdminUsername).Msg("Seed admin account created")
	return nil
}
