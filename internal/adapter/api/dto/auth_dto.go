package dto

import (
	"time"

	"github.com/joaovitorvlb/api-autopeck/internal/domain/user"
)

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse representa a resposta de login
type LoginResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// RefreshTokenRequest representa a requisição de renovação de token
type RefreshTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// UserResponse representa a resposta de usuário
type UserResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        user.Role   `json:"role"`
	Status      user.Status `json:"status"`
	LastLoginAt *time.Time  `json:"last_login_at"`
	CreatedAt   time.Time   `json:"created_at"`
}

// CreateUserRequest representa a requisição de criação de usuário
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4"`
}

// ForgotPasswordRequest representa a requisição de recuperação de senha
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ValidateRecoveryTokenRequest representa a requisição de validação de token
type ValidateRecoveryTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// ValidateRecoveryTokenResponse representa a resposta de validação de token
type ValidateRecoveryTokenResponse struct {
	Valid            bool   `json:"valid"`
	Email            string `json:"email,omitempty"`
	RemainingMinutes int    `json:"remaining_minutes,omitempty"`
}

// ResetPasswordRequest representa a requisição de redefinição de senha
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=4"`
}

// ToUserResponse converte um usuário do domínio para a resposta
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Status:      u.Status,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
