package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gemtrove/internal/config"
	"gemtrove/internal/domain"
	"gemtrove/internal/service"
	"gemtrove/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-that-is-long-enough",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "gemtrove-test",
	}
}

func testAdmin(t *testing.T, password string, active bool) *domain.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.AdminUser{
		ID:           uuid.New(),
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		FullName:     "Test Admin",
		IsActive:     active,
	}
}

func TestLogin_Success(t *testing.T) {
	repo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	admin := testAdmin(t, "correct-horse", true)
	repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(admin, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)
	assert.Equal(t, admin.Email, claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("GetByEmail", mock.Anything, "admin@example.com").
		Return(testAdmin(t, "correct-horse", true), nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@example.com",
		Password: "battery-staple",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever-works",
	})
	// Unknown user and bad password are indistinguishable to the caller.
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_InactiveAdmin(t *testing.T) {
	repo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("GetByEmail", mock.Anything, "admin@example.com").
		Return(testAdmin(t, "correct-horse", false), nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "admin@example.com",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, domain.ErrAdminInactive)
}

func TestRefreshToken_Success(t *testing.T) {
	repo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	admin := testAdmin(t, "correct-horse", true)
	repo.On("GetByEmail", mock.Anything, admin.Email).Return(admin, nil)
	repo.On("GetByID", mock.Anything, admin.ID).Return(admin, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    admin.Email,
		Password: "correct-horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	repo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	admin := testAdmin(t, "correct-horse", true)
	repo.On("GetByEmail", mock.Anything, admin.Email).Return(admin, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    admin.Email,
		Password: "correct-horse",
	})
	require.NoError(t, err)

	// An access token must not be usable as a refresh token.
	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateToken_RejectsRefreshToken(t *testing.T) {
	repo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	admin := testAdmin(t, "correct-horse", true)
	repo.On("GetByEmail", mock.Anything, admin.Email).Return(admin, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    admin.Email,
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateToken_Garbage(t *testing.T) {
	repo := new(mocks.MockAdminRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	repo := new(mocks.MockAdminRepo)
	svcA := service.NewAuthService(repo, testJWTConfig())

	otherCfg := testJWTConfig()
	otherCfg.Secret = "a-completely-different-secret"
	svcB := service.NewAuthService(repo, otherCfg)

	admin := testAdmin(t, "correct-horse", true)
	repo.On("GetByEmail", mock.Anything, admin.Email).Return(admin, nil)

	pair, err := svcA.Login(context.Background(), service.LoginInput{
		Email:    admin.Email,
		Password: "correct-horse",
	})
	require.NoError(t, err)

	_, err = svcB.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
