// AngelaMos | 2026
// service.go

package referral

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/ziver-app/ziver-backend/internal/config"
	"github.com/ziver-app/ziver-backend/internal/core"
	"github.com/ziver-app/ziver-backend/internal/economy"
)

var (
	ErrSelfReferral    = errors.New("users cannot refer themselves")
	ErrAlreadyReferred = errors.New("user was already referred")
	ErrCapExceeded     = errors.New("referral cap reached")
)

const pingChannel = "notify:referral-ping"

// Service mutates referral edges and the referrer's balance in one
// transaction. As in the economy service, the transaction entry point
// and the repository and ledger constructors are fields so tests run
// the same logic against in-memory fakes.
type Service struct {
	redis  *redis.Client
	app    config.AppConfig
	cfg    config.EconomyConfig
	reader Repository

	inTx      func(ctx context.Context, fn func(q core.DBTX) error) error
	repoFor   func(q core.DBTX) Repository
	ledgerFor func(q core.DBTX) economy.BalanceLedger
}

func NewService(
	db *sqlx.DB,
	redisClient *redis.Client,
	app config.AppConfig,
	cfg config.EconomyConfig,
) *Service {
	return &Service{
		redis:  redisClient,
		app:    app,
		cfg:    cfg,
		reader: NewRepository(db),
		inTx: func(ctx context.Context, fn func(q core.DBTX) error) error {
			return core.InTx(ctx, db, func(tx *sqlx.Tx) error {
				return fn(tx)
			})
		},
		repoFor: NewRepository,
		ledgerFor: func(q core.DBTX) economy.BalanceLedger {
			return economy.NewLedger(q)
		},
	}
}

// Track records a referral edge and pays the referrer the signup reward
// in one transaction. The referrer's row lock serializes the cap check
// against concurrent signups carrying the same referrer ID.
func (s *Service) Track(
	ctx context.Context,
	referrerID, referredID string,
) error {
	if referrerID == referredID {
		return ErrSelfReferral
	}

	return s.inTx(ctx, func(q core.DBTX) error {
		repo := s.repoFor(q)
		ledger := s.ledgerFor(q)

		if err := repo.LockUser(ctx, referrerID); err != nil {
			return fmt.Errorf("referrer: %w", err)
		}

		referredOK, err := repo.UserExists(ctx, referredID)
		if err != nil {
			return err
		}
		if !referredOK {
			return fmt.Errorf("referred user: %w", core.ErrNotFound)
		}

		alreadyReferred, err := repo.ReferredExists(ctx, referredID)
		if err != nil {
			return err
		}
		if alreadyReferred {
			return ErrAlreadyReferred
		}

		count, err := repo.CountByReferrer(ctx, referrerID)
		if err != nil {
			return err
		}
		if count >= s.cfg.MaxReferralsPerUser {
			return ErrCapExceeded
		}

		ref := &Referral{
			ID:            uuid.New().String(),
			ReferrerID:    referrerID,
			ReferredID:    referredID,
			RewardGranted: true,
		}

		if err := repo.Create(ctx, ref); err != nil {
			if errors.Is(err, core.ErrDuplicateKey) {
				return ErrAlreadyReferred
			}
			return err
		}

		_, err = ledger.Credit(
			ctx,
			referrerID,
			s.cfg.ReferralInitialReward,
			economy.ReasonReferralReward,
		)
		return err
	})
}

func (s *Service) ListReferred(
	ctx context.Context,
	referrerID string,
) ([]ReferredUser, error) {
	return s.reader.ListByReferrer(ctx, referrerID)
}

// ReferralLink returns the shareable signup URL carrying the user's ID.
func (s *Service) ReferralLink(userID string) string {
	return fmt.Sprintf("%s?ref=%s", s.app.ReferralURL, userID)
}

// DeletionPenalty is the ZP cost of pruning one referral: a fixed
// fraction of the original signup reward.
func (s *Service) DeletionPenalty() int64 {
	return int64(s.cfg.ReferralDeletionCostPct *
		float64(s.cfg.ReferralInitialReward))
}

// Delete removes a referral edge the caller owns and charges the
// deletion penalty. An insufficient balance rejects the whole operation,
// the edge stays. An edge owned by someone else is reported exactly like
// a missing one so callers cannot probe other users' rosters.
func (s *Service) Delete(
	ctx context.Context,
	callerID, referralID string,
) (int64, error) {
	penalty := s.DeletionPenalty()
	var newBalance int64

	err := s.inTx(ctx, func(q core.DBTX) error {
		repo := s.repoFor(q)
		ledger := s.ledgerFor(q)

		if err := repo.LockUser(ctx, callerID); err != nil {
			return err
		}

		ref, err := repo.GetByID(ctx, referralID)
		if err != nil {
			return err
		}

		if ref.ReferrerID != callerID {
			return fmt.Errorf("delete referral: %w", core.ErrNotFound)
		}

		newBalance, err = ledger.Debit(
			ctx,
			callerID,
			penalty,
			economy.ReasonReferralPenalty,
		)
		if err != nil {
			return err
		}

		return repo.Delete(ctx, referralID)
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

type pingEvent struct {
	ReferralID string    `json:"referral_id"`
	ReferrerID string    `json:"referrer_id"`
	ReferredID string    `json:"referred_id"`
	SentAt     time.Time `json:"sent_at"`
}

// Ping nudges a referred user through the notification fanout channel.
func (s *Service) Ping(
	ctx context.Context,
	callerID, referralID string,
) error {
	ref, err := s.reader.GetByID(ctx, referralID)
	if err != nil {
		return err
	}

	if ref.ReferrerID != callerID {
		return fmt.Errorf("ping referral: %w", core.ErrNotFound)
	}

	payload, err := json.Marshal(pingEvent{
		ReferralID: ref.ID,
		ReferrerID: ref.ReferrerID,
		ReferredID: ref.ReferredID,
		SentAt:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal ping: %w", err)
	}

	if err := s.redis.Publish(ctx, pingChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish ping: %w", err)
	}

	return nil
}
