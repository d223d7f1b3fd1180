// AngelaMos | 2026
// dto.go

package economy

import (
	"time"
)

type StartMiningResult struct {
	StartedAt   time.Time `json:"started_at"`
	CompletesAt time.Time `json:"completes_at"`
	RatePerHour int64     `json:"mining_rate_zp_per_hour"`
	CapacityZP  int64     `json:"mining_capacity_zp"`
	CycleHours  int       `json:"mining_cycle_hours"`
}

type ClaimResult struct {
	Payout     int64     `json:"payout"`
	NewBalance int64     `json:"new_balance"`
	ClaimedAt  time.Time `json:"claimed_at"`
}

type CheckinResult struct {
	Bonus              int64 `json:"bonus"`
	Streak             int   `json:"streak"`
	NewBalance         int64 `json:"new_balance"`
	SocialCapitalScore int64 `json:"social_capital_score"`
}

type UpgradeRequest struct {
	Target string `json:"target" validate:"required,oneof=mining_speed mining_capacity mining_hours"`
}

type UpgradeResult struct {
	Target      string `json:"target"`
	Cost        int64  `json:"cost"`
	RatePerHour int64  `json:"mining_rate_zp_per_hour"`
	CapacityZP  int64  `json:"mining_capacity_zp"`
	CycleHours  int    `json:"mining_cycle_hours"`
	NewBalance  int64  `json:"new_balance"`
}

type MinerStatus struct {
	ZPBalance          int64      `json:"zp_balance"`
	SocialCapitalScore int64      `json:"social_capital_score"`
	RatePerHour        int64      `json:"mining_rate_zp_per_hour"`
	CapacityZP         int64      `json:"mining_capacity_zp"`
	CycleHours         int        `json:"mining_cycle_hours"`
	Mining             bool       `json:"mining"`
	Ready              bool       `json:"ready"`
	AccruedZP          int64      `json:"accrued_zp"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	CompletesAt        *time.Time `json:"completes_at,omitempty"`
	DailyStreakCount   int        `json:"daily_streak_count"`
}

type LedgerEntryResponse struct {
	ID           string    `json:"id"`
	Amount       int64     `json:"amount"`
	Reason       string    `json:"reason"`
	BalanceAfter int64     `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
}

type LedgerResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
}

func ToLedgerResponse(entries []LedgerEntry) LedgerResponse {
	out := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, LedgerEntryResponse{
			ID:           e.ID,
			Amount:       e.Amount,
			Reason:       e.Reason,
			BalanceAfter: e.BalanceAfter,
			CreatedAt:    e.CreatedAt,
		})
	}
	return LedgerResponse{Entries: out}
}
