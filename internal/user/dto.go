// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateUserRequest struct {
	FullName       *string `json:"full_name,omitempty"       validate:"omitempty,min=1,max=100"`
	TelegramHandle *string `json:"telegram_handle,omitempty" validate:"omitempty,min=2,max=64"`
	TwitterHandle  *string `json:"twitter_handle,omitempty"  validate:"omitempty,min=2,max=64"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

type LinkWalletRequest struct {
	TONWalletAddress string `json:"ton_wallet_address" validate:"required,min=36,max=68"`
}

type UserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	Role               string    `json:"role"`
	ZPBalance          int64     `json:"zp_balance"`
	SocialCapitalScore int64     `json:"social_capital_score"`
	MiningRatePerHour  int64     `json:"mining_rate_zp_per_hour"`
	MiningCapacity     int64     `json:"mining_capacity_zp"`
	MiningCycleHours   int       `json:"mining_cycle_hours"`
	MiningStartedAt    *string   `json:"mining_started_at"`
	LastClaimAt        *string   `json:"last_claim_at"`
	DailyStreakCount   int       `json:"daily_streak_count"`
	TwoFAEnabled       bool      `json:"is_2fa_enabled"`
	TONWalletAddress   *string   `json:"ton_wallet_address"`
	TelegramHandle     *string   `json:"telegram_handle"`
	TwitterHandle      *string   `json:"twitter_handle"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

type ListUsersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Role     string `json:"role"`
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		FullName:           u.FullName,
		Role:               u.Role,
		ZPBalance:          u.ZPBalance,
		SocialCapitalScore: u.SocialCapitalScore,
		MiningRatePerHour:  u.MiningRatePerHour,
		MiningCapacity:     u.MiningCapacity,
		MiningCycleHours:   u.MiningCycleHours,
		MiningStartedAt:    formatTimePtr(u.MiningStartedAt),
		LastClaimAt:        formatTimePtr(u.LastClaimAt),
		DailyStreakCount:   u.DailyStreakCount,
		TwoFAEnabled:       u.TwoFAEnabled,
		TONWalletAddress:   u.TONWalletAddress,
		TelegramHandle:     u.TelegramHandle,
		TwitterHandle:      u.TwitterHandle,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
