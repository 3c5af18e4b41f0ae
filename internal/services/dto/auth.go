package dto

import (
	"time"

	"essaylab_backend/internal/models"
)

// RegisterRequest - account sign-up payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest - credentials login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest - token rotation
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest - revokes one refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// VerifyEmailRequest - email confirmation token
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// PasswordResetRequest - starts the reset flow
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirm - finishes the reset flow
type PasswordResetConfirm struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// AcceptInviteRequest - first login for an admin-created account
type AcceptInviteRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// AuthResponse - token pair plus the signed-in user
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         UserResponse `json:"user"`
}

// UserResponse - public account view
type UserResponse struct {
	ID            string               `json:"id"`
	Email         string               `json:"email"`
	Name          string               `json:"name"`
	Role          models.UserRole      `json:"role"`
	AccountStatus models.AccountStatus `json:"account_status"`
	IsVerified    bool                 `json:"is_verified"`
	LastActiveAt  *time.Time           `json:"last_active_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// NewUserResponse maps a model row to its public view.
func NewUserResponse(u *models.User) UserResponse {
	resp := UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Role:          u.Role,
		AccountStatus: u.AccountStatus,
		IsVerified:    u.IsVerified,
		LastActiveAt:  u.LastActiveAt,
		CreatedAt:     u.CreatedAt,
	}
	if u.Profile != nil {
		resp.Name = u.Profile.FullName
	}
	return resp
}
