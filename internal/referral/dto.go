// AngelaMos | 2026
// dto.go

package referral

import (
	"time"
)

type ReferredUserResponse struct {
	ReferralID         string    `json:"referral_id"`
	UserID             string    `json:"user_id"`
	FullName           string    `json:"full_name"`
	SocialCapitalScore int64     `json:"social_capital_score"`
	JoinedAt           time.Time `json:"joined_at"`
}

type ListResponse struct {
	Referrals       []ReferredUserResponse `json:"referrals"`
	ReferralLink    string                 `json:"referral_link"`
	DeletionPenalty int64                  `json:"deletion_penalty_zp"`
}

type DeleteResponse struct {
	PenaltyCharged int64 `json:"penalty_charged"`
	NewBalance     int64 `json:"new_balance"`
}

func ToReferredUserResponses(referred []ReferredUser) []ReferredUserResponse {
	out := make([]ReferredUserResponse, 0, len(referred))
	for _, r := range referred {
		out = append(out, ReferredUserResponse{
			ReferralID:         r.ReferralID,
			UserID:             r.ReferredID,
			FullName:           r.FullName,
			SocialCapitalScore: r.SocialCapitalScore,
			JoinedAt:           r.JoinedAt,
		})
	}
	return out
}
