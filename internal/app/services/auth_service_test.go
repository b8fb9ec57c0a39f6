package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/models/dto"
	"github.com/gspavan07/StudentCodingDashboard/internal/app/repositories"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/apperrors"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/auth"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	users := repositories.NewMemoryUsers()

	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)
	_, err = users.Create(context.Background(), &models.User{
		Username: "admin",
		Password: hash,
		IsAdmin:  true,
	})
	require.NoError(t, err)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "dashboard-test",
	})
	return NewAuthService(users, jwtService)
}

func TestLogin_Success(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "admin",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.Username)
	assert.True(t, resp.IsAdmin)
	assert.Greater(t, resp.ExpiresIn, 0)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "admin",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownUserMapsToInvalidCredentials(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "ghost",
		Password: "anything",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
