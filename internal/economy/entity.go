// AngelaMos | 2026
// entity.go

package economy

import (
	"time"
)

// Miner is the economy-facing projection of a user row: the balance,
// the miner configuration, and the time-gated counters.
type Miner struct {
	UserID             string     `db:"id"`
	ZPBalance          int64      `db:"zp_balance"`
	SocialCapitalScore int64      `db:"social_capital_score"`
	RatePerHour        int64      `db:"mining_rate_zp_per_hour"`
	Capacity           int64      `db:"mining_capacity_zp"`
	CycleHours         int        `db:"mining_cycle_hours"`
	MiningStartedAt    *time.Time `db:"mining_started_at"`
	LastClaimAt        *time.Time `db:"last_claim_at"`
	LastCheckinDate    *time.Time `db:"last_checkin_date"`
	DailyStreakCount   int        `db:"daily_streak_count"`
}

func (m *Miner) IsMining() bool {
	return m.MiningStartedAt != nil
}

func (m *Miner) Cycle() time.Duration {
	return time.Duration(m.CycleHours) * time.Hour
}

// LedgerEntry is one append-only record of a balance mutation. Credits
// carry positive amounts, debits negative ones.
type LedgerEntry struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	Amount       int64     `db:"amount"`
	Reason       string    `db:"reason"`
	BalanceAfter int64     `db:"balance_after"`
	CreatedAt    time.Time `db:"created_at"`
}

const (
	ReasonMiningClaim     = "mining_claim"
	ReasonDailyCheckin    = "daily_checkin"
	ReasonMinerUpgrade    = "miner_upgrade"
	ReasonReferralReward  = "referral_reward"
	ReasonReferralPenalty = "referral_deletion_penalty"
	ReasonTaskReward      = "task_reward"
	ReasonSponsoredTask   = "sponsored_task_purchase"
)
