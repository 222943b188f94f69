package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"transport-backend/internal/services"
	"transport-backend/pkg/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	latency     time.Duration
}

// NewAuthHandler wires the login endpoint. latency adds an artificial
// delay to every login attempt so the frontend's loading states are
// exercised in demos; set it to zero in production.
func NewAuthHandler(authService *services.AuthService, latency time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		latency:     latency,
	}
}

// Login authenticates the operator and issues a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Something went wrong. Please try again later.", err)
		return
	}

	if h.latency > 0 {
		time.Sleep(h.latency)
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password. Please try again.", nil)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}
