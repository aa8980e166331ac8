package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/config"
	"github.com/souqly/souqly-backend/internal/models"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func hashOf(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(new(mockUserRepo), testAuthConfig())

	cases := []struct {
		name, userName, email, password string
	}{
		{"missing name", "", "a@b.com", "longenough"},
		{"bad email", "Sami", "not-an-email", "longenough"},
		{"short password", "Sami", "a@b.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.userName, tc.email, tc.password)
			require.Error(t, err)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, 400, appErr.StatusCode)
		})
	}
}

func TestRegisterReturnsTokens(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("Create", mock.Anything, "Sami", "sami@example.com", mock.Anything).
		Return(&models.User{ID: 1, Name: "Sami", Email: "sami@example.com", Role: models.RoleUser, Active: true}, nil)

	svc := NewAuthService(userRepo, testAuthConfig())
	result, err := svc.Register(context.Background(), "Sami", "Sami@Example.com ", "longenough")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.Equal(t, "sami@example.com", result.User.Email)

	identity, err := svc.ParseAccessToken(result.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), identity.UserID)
	assert.Equal(t, models.RoleUser, identity.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "sami@example.com").
		Return(&models.User{ID: 1, Email: "sami@example.com", PasswordHash: hashOf("correct"), Active: true}, nil)

	svc := NewAuthService(userRepo, testAuthConfig())
	_, err := svc.Login(context.Background(), "sami@example.com", "wrong")

	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 401, appErr.StatusCode)
	assert.Equal(t, "Invalid email or password", appErr.Message)
}

func TestLoginUnknownEmailSameMessage(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, apperrors.ErrNotFound)

	svc := NewAuthService(userRepo, testAuthConfig())
	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")

	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, "Invalid email or password", appErr.Message)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "sami@example.com").
		Return(&models.User{ID: 1, Email: "sami@example.com", PasswordHash: hashOf("correct"), Active: false}, nil)

	svc := NewAuthService(userRepo, testAuthConfig())
	_, err := svc.Login(context.Background(), "sami@example.com", "correct")

	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, "Account is deactivated", appErr.Message)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.User{ID: 1, Email: "sami@example.com", Role: models.RoleUser, Active: true}, nil)

	svc := NewAuthService(userRepo, testAuthConfig())
	result, err := svc.Register(context.Background(), "Sami", "sami@example.com", "longenough")
	require.NoError(t, err)

	// An access token must not pass as a refresh token.
	_, err = svc.RefreshToken(context.Background(), result.Tokens.AccessToken)
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 401, appErr.StatusCode)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.User{ID: 1, Email: "sami@example.com", Role: models.RoleUser, Active: true}, nil)
	userRepo.On("GetStatus", mock.Anything, int64(1)).Return(true, nil)

	svc := NewAuthService(userRepo, testAuthConfig())
	result, err := svc.Register(context.Background(), "Sami", "sami@example.com", "longenough")
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), result.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	identity, err := svc.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(1), identity.UserID)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(new(mockUserRepo), testAuthConfig())

	_, err := svc.ParseAccessToken("not.a.token")
	require.Error(t, err)

	// Token signed with a different secret.
	other := NewAuthService(new(mockUserRepo), config.AuthConfig{
		JWTSecret:       "other-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Minute,
	})
	pair, err := other.issueTokens(models.Identity{UserID: 1, Role: models.RoleUser})
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(pair.AccessToken)
	require.Error(t, err)
}
