package dto

import (
	"time"

	"github.com/cloudcare/helpdesk/internal/application/auth/helpers"
	"github.com/cloudcare/helpdesk/internal/domain/user"
)

// RegisterRequest represents the body of a sign-up call
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password  string `json:"password" binding:"required,min=8,strongpassword" example:"Secret@123"`
	FirstName string `json:"firstName" binding:"required,notblank,min=2" example:"Jane"`
	LastName  string `json:"lastName" binding:"required,notblank,min=2" example:"Doe"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"Secret@123"`
}

// RefreshTokenRequest is shared by refresh and logout
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,strongpassword"`
}

// UserResponse is a user without credentials
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

func ToUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID(),
		Email:       u.Email(),
		FirstName:   u.FirstName(),
		LastName:    u.LastName(),
		Role:        u.Role().String(),
		IsActive:    u.IsActive(),
		LastLoginAt: u.LastLoginAt(),
		CreatedAt:   u.CreatedAt(),
		UpdatedAt:   u.UpdatedAt(),
	}
}

func ToTokenResponse(p *helpers.TokenPair) *TokenResponse {
	if p == nil {
		return nil
	}
	return &TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresIn:    p.ExpiresIn,
		TokenType:    p.TokenType,
	}
}
