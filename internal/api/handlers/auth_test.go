package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
	"transport-backend/internal/services"
	"transport-backend/pkg/jwt"
)

func newLoginRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	authService := services.NewAuthService(userRepo, jwt.NewJWTUtil("test-secret", "1h"))
	handler := NewAuthHandler(authService, 0)

	router := gin.New()
	router.POST("/api/v1/auth/login", handler.Login)
	return router
}

func postJSON(router *gin.Engine, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestLoginEndpointSuccess(t *testing.T) {
	router := newLoginRouter(t)

	body, _ := json.Marshal(map[string]string{
		"email":    "admin@college.edu",
		"password": "password123",
	})
	w := postJSON(router, "/api/v1/auth/login", body)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
			User  struct {
				Role  string `json:"role"`
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "admin", resp.Data.User.Role)
	assert.Equal(t, "College Admin", resp.Data.User.Name)
}

func TestLoginEndpointRejectsBadCredentials(t *testing.T) {
	router := newLoginRouter(t)

	body, _ := json.Marshal(map[string]string{
		"email":    "admin@college.edu",
		"password": "wrong-password",
	})
	w := postJSON(router, "/api/v1/auth/login", body)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password. Please try again.")
}

func TestLoginEndpointMalformedBody(t *testing.T) {
	router := newLoginRouter(t)

	w := postJSON(router, "/api/v1/auth/login", []byte("{not json"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
