package services

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
	"transport-backend/pkg/jwt"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong
// password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid email or password")

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  models.AuthUser `json:"user"`
}

type AuthService struct {
	userRepo  *repository.UserRepository
	jwtUtil   *jwt.JWTUtil
	validator *validator.Validate
}

func NewAuthService(userRepo *repository.UserRepository, jwtUtil *jwt.JWTUtil) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtUtil:   jwtUtil,
		validator: validator.New(),
	}
}

// Login verifies the credentials against the stored bcrypt hash and
// issues a signed token together with the user's display identity.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.TouchLastLogin(user.ID, time.Now()); err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: token,
		User: models.AuthUser{
			Role:  user.Role,
			Name:  user.Name,
			Email: user.Email,
		},
	}, nil
}
