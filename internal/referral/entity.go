// AngelaMos | 2026
// entity.go

package referral

import (
	"time"
)

// Referral is one edge in the referral graph. A referred user appears as
// the target of at most one edge, ever.
type Referral struct {
	ID            string    `db:"id"`
	ReferrerID    string    `db:"referrer_id"`
	ReferredID    string    `db:"referred_id"`
	RewardGranted bool      `db:"reward_granted"`
	CreatedAt     time.Time `db:"created_at"`
}

// ReferredUser is a referral edge joined with the referred account's
// public profile, for roster listings.
type ReferredUser struct {
	ReferralID         string    `db:"referral_id"`
	ReferredID         string    `db:"referred_id"`
	FullName           string    `db:"full_name"`
	SocialCapitalScore int64     `db:"social_capital_score"`
	JoinedAt           time.Time `db:"joined_at"`
}
