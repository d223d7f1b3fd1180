// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type LoginRequest struct {
	Email     string `json:"email"       validate:"required,email,max=255"`
	Password  string `json:"password"    validate:"required,min=8,max=128"`
	TwoFACode string `json:"two_fa_code" validate:"omitempty,len=6,numeric"`
}

type RegisterRequest struct {
	Email          string  `json:"email"           validate:"required,email,max=255"`
	Password       string  `json:"password"        validate:"required,min=8,max=128"`
	FullName       string  `json:"full_name"       validate:"required,min=1,max=100"`
	TelegramHandle *string `json:"telegram_handle" validate:"omitempty,min=2,max=64"`
	TwitterHandle  *string `json:"twitter_handle"  validate:"omitempty,min=2,max=64"`
	ReferrerID     *string `json:"referrer_id"     validate:"omitempty,uuid4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	TwoFAEnabled bool      `json:"is_2fa_enabled"`
	CreatedAt    time.Time `json:"created_at"`
}

type AuthResponse struct {
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=128"`
}

type TwoFASetupResponse struct {
	Secret     string `json:"secret"`
	OtpauthURL string `json:"otpauth_url"`
}

type TwoFAConfirmRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type TwoFADisableRequest struct {
	Password string `json:"password" validate:"required"`
	Code     string `json:"code"     validate:"required,len=6,numeric"`
}
