// AngelaMos | 2026
// service.go

package economy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ziver-app/ziver-backend/internal/config"
	"github.com/ziver-app/ziver-backend/internal/core"
)

var (
	ErrAlreadyMining       = errors.New("mining cycle already in progress")
	ErrNotMining           = errors.New("no active mining cycle")
	ErrAlreadyCheckedIn    = errors.New("already checked in today")
	ErrInvalidUpgrade      = errors.New("invalid upgrade")
	ErrInsufficientBalance = errors.New("insufficient ZP balance")
)

// Service runs every balance-touching operation inside one transaction
// holding the user's row lock. The transaction entry point and the
// repository and ledger constructors are fields, like the clock, so
// tests run the same service logic against in-memory fakes.
type Service struct {
	cfg    config.EconomyConfig
	now    func() time.Time
	reader Repository

	inTx      func(ctx context.Context, fn func(q core.DBTX) error) error
	repoFor   func(q core.DBTX) Repository
	ledgerFor func(q core.DBTX) BalanceLedger
}

func NewService(db *sqlx.DB, cfg config.EconomyConfig) *Service {
	return &Service{
		cfg:    cfg,
		now:    time.Now,
		reader: NewRepository(db),
		inTx: func(ctx context.Context, fn func(q core.DBTX) error) error {
			return core.InTx(ctx, db, func(tx *sqlx.Tx) error {
				return fn(tx)
			})
		},
		repoFor: NewRepository,
		ledgerFor: func(q core.DBTX) BalanceLedger {
			return NewLedger(q)
		},
	}
}

// StartMining opens a new cycle for the user. Fails with ErrAlreadyMining
// when a cycle is already running, regardless of whether it has matured.
func (s *Service) StartMining(
	ctx context.Context,
	userID string,
) (*StartMiningResult, error) {
	var result *StartMiningResult

	err := s.inTx(ctx, func(q core.DBTX) error {
		repo := s.repoFor(q)

		miner, err := repo.GetMinerForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		if miner.IsMining() {
			return ErrAlreadyMining
		}

		startedAt := s.now().UTC()
		if err := repo.SetMiningStarted(ctx, userID, startedAt); err != nil {
			return err
		}

		result = &StartMiningResult{
			StartedAt:   startedAt,
			CompletesAt: startedAt.Add(miner.Cycle()),
			RatePerHour: miner.RatePerHour,
			CapacityZP:  miner.Capacity,
			CycleHours:  miner.CycleHours,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ClaimZP settles the active cycle. Payout is pro-rated by elapsed time,
// bounded above by both the cycle length and the miner's capacity. The
// credit and the state reset commit together or not at all.
func (s *Service) ClaimZP(
	ctx context.Context,
	userID string,
) (*ClaimResult, error) {
	var result *ClaimResult

	err := s.inTx(ctx, func(q core.DBTX) error {
		repo := s.repoFor(q)
		ledger := s.ledgerFor(q)

		miner, err := repo.GetMinerForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		if !miner.IsMining() {
			return ErrNotMining
		}

		now := s.now().UTC()
		payout := computePayout(
			now.Sub(*miner.MiningStartedAt),
			miner.Cycle(),
			miner.RatePerHour,
			miner.Capacity,
		)

		newBalance, err := ledger.Credit(ctx, userID, payout, ReasonMiningClaim)
		if err != nil {
			return err
		}

		if err := repo.FinishCycle(ctx, userID, now); err != nil {
			return err
		}

		result = &ClaimResult{
			Payout:     payout,
			NewBalance: newBalance,
			ClaimedAt:  now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CheckIn records today's daily check-in. The date is read once at entry
// so a midnight rollover mid-request cannot split the streak computation
// across two calendar days.
func (s *Service) CheckIn(
	ctx context.Context,
	userID string,
) (*CheckinResult, error) {
	today := truncateToDay(s.now().UTC())

	var result *CheckinResult

	err := s.inTx(ctx, func(q core.DBTX) error {
		repo := s.repoFor(q)
		ledger := s.ledgerFor(q)

		miner, err := repo.GetMinerForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		if miner.LastCheckinDate != nil &&
			sameDay(*miner.LastCheckinDate, today) {
			return ErrAlreadyCheckedIn
		}

		streak := nextStreak(
			miner.LastCheckinDate,
			today,
			miner.DailyStreakCount,
		)

		bonus := s.cfg.DailyCheckinBonus
		if streak >= s.cfg.StreakThreshold {
			bonus += s.cfg.StreakBonus
		}

		newBalance, err := ledger.Credit(ctx, userID, bonus, ReasonDailyCheckin)
		if err != nil {
			return err
		}

		newScore, err := ledger.CreditSocial(ctx, userID, bonus)
		if err != nil {
			return err
		}

		if err := repo.UpdateCheckin(ctx, userID, today, streak); err != nil {
			return err
		}

		result = &CheckinResult{
			Bonus:              bonus,
			Streak:             streak,
			NewBalance:         newBalance,
			SocialCapitalScore: newScore,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpgradeMiner buys the next rung of the requested ladder. Upgrades are
// forbidden while a cycle is running so an in-flight cycle's payout is
// always computed against the configuration it started with.
func (s *Service) UpgradeMiner(
	ctx context.Context,
	userID, target string,
) (*UpgradeResult, error) {
	var result *UpgradeResult

	err := s.inTx(ctx, func(q core.DBTX) error {
		repo := s.repoFor(q)
		ledger := s.ledgerFor(q)

		miner, err := repo.GetMinerForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		if miner.IsMining() {
			return ErrAlreadyMining
		}

		var current int64
		switch target {
		case UpgradeMiningSpeed:
			current = miner.RatePerHour
		case UpgradeMiningCapacity:
			current = miner.Capacity
		case UpgradeMiningHours:
			current = int64(miner.CycleHours)
		default:
			return fmt.Errorf(
				"unknown upgrade target %q: %w",
				target,
				ErrInvalidUpgrade,
			)
		}

		step, err := nextUpgrade(target, current)
		if err != nil {
			return err
		}

		newBalance, err := ledger.Debit(
			ctx,
			userID,
			step.Cost,
			ReasonMinerUpgrade,
		)
		if err != nil {
			return err
		}

		rate, capacity, cycleHours := miner.RatePerHour, miner.Capacity, miner.CycleHours
		switch target {
		case UpgradeMiningSpeed:
			rate = step.Value
		case UpgradeMiningCapacity:
			capacity = step.Value
		case UpgradeMiningHours:
			cycleHours = int(step.Value)
		}

		err = repo.UpdateMinerConfig(ctx, userID, rate, capacity, cycleHours)
		if err != nil {
			return err
		}

		result = &UpgradeResult{
			Target:      target,
			Cost:        step.Cost,
			RatePerHour: rate,
			CapacityZP:  capacity,
			CycleHours:  cycleHours,
			NewBalance:  newBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetStatus is a read-only snapshot, no locking.
func (s *Service) GetStatus(
	ctx context.Context,
	userID string,
) (*MinerStatus, error) {
	miner, err := s.reader.GetMiner(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := &MinerStatus{
		ZPBalance:          miner.ZPBalance,
		SocialCapitalScore: miner.SocialCapitalScore,
		RatePerHour:        miner.RatePerHour,
		CapacityZP:         miner.Capacity,
		CycleHours:         miner.CycleHours,
		Mining:             miner.IsMining(),
		DailyStreakCount:   miner.DailyStreakCount,
	}

	if miner.MiningStartedAt != nil {
		now := s.now().UTC()
		completesAt := miner.MiningStartedAt.Add(miner.Cycle())
		status.StartedAt = miner.MiningStartedAt
		status.CompletesAt = &completesAt
		status.Ready = !now.Before(completesAt)
		status.AccruedZP = computePayout(
			now.Sub(*miner.MiningStartedAt),
			miner.Cycle(),
			miner.RatePerHour,
			miner.Capacity,
		)
	}

	return status, nil
}

func (s *Service) GetLedger(
	ctx context.Context,
	userID string,
	limit, offset int,
) ([]LedgerEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	return s.reader.ListLedger(ctx, userID, limit, offset)
}

// computePayout prices an elapsed slice of a cycle. Elapsed time past
// the cycle length earns nothing, and capacity is the hard ceiling.
func computePayout(
	elapsed, cycle time.Duration,
	ratePerHour, capacity int64,
) int64 {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > cycle {
		elapsed = cycle
	}

	payout := int64(elapsed.Hours() * float64(ratePerHour))
	if payout > capacity {
		payout = capacity
	}
	if payout < 0 {
		payout = 0
	}

	return payout
}

// nextStreak continues the streak only across an exactly-one-day gap.
// Anything else, including the very first check-in, starts over at 1.
func nextStreak(last *time.Time, today time.Time, current int) int {
	if last == nil {
		return 1
	}

	yesterday := today.AddDate(0, 0, -1)
	if sameDay(*last, yesterday) {
		return current + 1
	}

	return 1
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
