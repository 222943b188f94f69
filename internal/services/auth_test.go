package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
	"transport-backend/pkg/jwt"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	userRepo := repository.NewUserRepository()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	_, err = userRepo.Create(&models.User{
		ID:       "user-1",
		Name:     "College Admin",
		Email:    "admin@college.edu",
		Password: string(hash),
		Role:     "admin",
	})
	require.NoError(t, err)

	return NewAuthService(userRepo, jwt.NewJWTUtil("test-secret", "1h"))
}

func TestLoginSuccess(t *testing.T) {
	svc := newAuthFixture(t)

	resp, err := svc.Login(&LoginRequest{
		Email:    "admin@college.edu",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.User.Role)
	assert.Equal(t, "College Admin", resp.User.Name)
	assert.Equal(t, "admin@college.edu", resp.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(&LoginRequest{
		Email:    "admin@college.edu",
		Password: "nope",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(&LoginRequest{
		Email:    "nobody@college.edu",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginTokenCarriesIdentity(t *testing.T) {
	svc := newAuthFixture(t)
	util := jwt.NewJWTUtil("test-secret", "1h")

	resp, err := svc.Login(&LoginRequest{
		Email:    "admin@college.edu",
		Password: "password123",
	})
	require.NoError(t, err)

	claims, err := util.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@college.edu", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "College Admin", claims.Name)
}
