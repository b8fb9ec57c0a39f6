package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	appModels "github.com/gspavan07/StudentCodingDashboard/internal/app/models"
	appRepos "github.com/gspavan07/StudentCodingDashboard/internal/app/repositories"
	"github.com/gspavan07/StudentCodingDashboard/internal/config"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/apperrors"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/auth"
)

// CreateDefaultData seeds the admin account and the about-page developer
// list. Safe to run on every startup: records that already exist are left
// alone.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, cfg *config.Config, lgr zerolog.Logger) error {
	var finalErr error

	if err := seedAdminUser(ctx, repos.Users, cfg, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if err := seedDevelopers(ctx, repos.Developers, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func seedAdminUser(ctx context.Context, users appRepos.UserStore, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Admin.Password == "" {
		lgr.Warn().Msg("Admin password not configured, skipping admin seed")
		return nil
	}

	if _, err := users.GetByUsername(ctx, cfg.Admin.Username); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	_, err = users.Create(ctx, &appModels.User{
		Username: cfg.Admin.Username,
		Password: hash,
		IsAdmin:  true,
	})
	if err != nil && !errors.Is(err, apperrors.ErrUsernameExists) {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Str("username", cfg.Admin.Username).Msg("Admin user seeded")
	return nil
}

func seedDevelopers(ctx context.Context, developers appRepos.DeveloperStore, lgr zerolog.Logger) error {
	existing, err := developers.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	defaults := []appModels.Developer{
		{Name: "Pavan Gollapalli", Role: "Full Stack Developer", GithubProfile: "https://github.com/gspavan07"},
	}

	var finalErr error
	for i := range defaults {
		if _, err := developers.Create(ctx, &defaults[i]); err != nil {
			lgr.Error().Err(err).Str("name", defaults[i].Name).Msg("Error seeding developer")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Int("count", len(defaults)).Msg("Developer list seeded")
	}
	return finalErr
}
