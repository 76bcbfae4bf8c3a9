package seed

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/odemir/studentbook/internal/app/models"
	appRepos "github.com/odemir/studentbook/internal/app/repositories"
	"github.com/odemir/studentbook/internal/config"
	pkgAuth "github.com/odemir/studentbook/internal/pkg/auth"
)

// CreateDefaultAdmin creates the default admin account when the users table
// is empty. The credentials come from the admin section of the configuration.
func CreateDefaultAdmin(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	count, err := userRepo.CountUsers(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error counting users for admin seed")
		return err
	}
	if count > 0 {
		lgr.Debug().Msg("Users already exist, skipping admin seed")
		return nil
	}

	lgr.Info().Str("email", cfg.Admin.Email).Msg("Creating default admin user...")

	hashedPassword, err := pkgAuth.HashPassword(cfg.Admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.User{
		Email:     cfg.Admin.Email,
		Password:  hashedPassword,
		RoleType:  appModels.RoleAdmin,
		CreatedAt: time.Now(),
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
	return nil
}
