package services

import (
	"context"
	"errors"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models/dto"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/repositories"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/apperrors"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/auth"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/logger"
)

// AuthService checks admin credentials and issues access tokens.
type AuthService struct {
	users      repositories.UserStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service instance.
func NewAuthService(users repositories.UserStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{users: users, jwtService: jwtService}
}

// Login verifies the credentials and returns a signed token. An unknown
// username and a wrong password both map to ErrInvalidCredentials so the
// response does not leak which usernames exist.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		logger.Warn().Str("username", req.Username).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("username", user.Username).Msg("User logged in")

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
	}, nil
}
