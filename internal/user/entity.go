// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID                 string     `db:"id"`
	Email              string     `db:"email"`
	PasswordHash       string     `db:"password_hash"`
	FullName           string     `db:"full_name"`
	Role               string     `db:"role"`
	TokenVersion       int        `db:"token_version"`
	ZPBalance          int64      `db:"zp_balance"`
	SocialCapitalScore int64      `db:"social_capital_score"`
	MiningRatePerHour  int64      `db:"mining_rate_zp_per_hour"`
	MiningCapacity     int64      `db:"mining_capacity_zp"`
	MiningCycleHours   int        `db:"mining_cycle_hours"`
	MiningStartedAt    *time.Time `db:"mining_started_at"`
	LastClaimAt        *time.Time `db:"last_claim_at"`
	LastCheckinDate    *time.Time `db:"last_checkin_date"`
	DailyStreakCount   int        `db:"daily_streak_count"`
	TwoFASecret        *string    `db:"two_fa_secret"`
	TwoFAEnabled       bool       `db:"two_fa_enabled"`
	TONWalletAddress   *string    `db:"ton_wallet_address"`
	TelegramHandle     *string    `db:"telegram_handle"`
	TwitterHandle      *string    `db:"twitter_handle"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	DeletedAt          *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsMining reports whether the user has an active mining cycle.
func (u *User) IsMining() bool {
	return u.MiningStartedAt != nil
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
