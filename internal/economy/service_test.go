// AngelaMos | 2026
// service_test.go

package economy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziver-app/ziver-backend/internal/config"
	"github.com/ziver-app/ziver-backend/internal/core"
)

func TestComputePayout_ProRatedEarlyClaim(t *testing.T) {
	// 2 hours into a 4 hour cycle at 10 ZP/h earns 20.
	payout := computePayout(2*time.Hour, 4*time.Hour, 10, 50)
	assert.Equal(t, int64(20), payout)
}

func TestComputePayout_CappedByCapacity(t *testing.T) {
	// Claim after 6 elapsed hours with rate 10, capacity 50, cycle 4h:
	// capacity wins over the 60 the rate alone would pay.
	payout := computePayout(6*time.Hour, 4*time.Hour, 10, 50)
	assert.Equal(t, int64(50), payout)
}

func TestComputePayout_ElapsedCappedAtCycle(t *testing.T) {
	// A week past the cycle end earns no more than the cycle itself.
	atCycle := computePayout(4*time.Hour, 4*time.Hour, 10, 1000)
	wayPast := computePayout(7*24*time.Hour, 4*time.Hour, 10, 1000)
	assert.Equal(t, atCycle, wayPast)
	assert.Equal(t, int64(40), wayPast)
}

func TestComputePayout_FlooredToWholeZP(t *testing.T) {
	payout := computePayout(90*time.Minute, 4*time.Hour, 10, 50)
	assert.Equal(t, int64(15), payout)

	payout = computePayout(91*time.Minute, 4*time.Hour, 10, 50)
	assert.Equal(t, int64(15), payout)
}

func TestComputePayout_NegativeElapsed(t *testing.T) {
	payout := computePayout(-time.Hour, 4*time.Hour, 10, 50)
	assert.Equal(t, int64(0), payout)
}

func TestComputePayout_Bounds(t *testing.T) {
	// Payout never exceeds capacity nor the elapsed-time earnings.
	for _, elapsed := range []time.Duration{
		0,
		30 * time.Minute,
		time.Hour,
		3 * time.Hour,
		4 * time.Hour,
		10 * time.Hour,
	} {
		payout := computePayout(elapsed, 4*time.Hour, 10, 50)
		assert.LessOrEqual(t, payout, int64(50))
		assert.LessOrEqual(t, float64(payout), elapsed.Hours()*10+1)
		assert.GreaterOrEqual(t, payout, int64(0))
	}
}

func TestNextStreak_FirstCheckin(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, nextStreak(nil, today, 0))
}

func TestNextStreak_Consecutive(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	assert.Equal(t, 4, nextStreak(&yesterday, today, 3))
}

func TestNextStreak_ResetOnGap(t *testing.T) {
	// Check-in on day 1, skip day 2, check in on day 3: streak resets
	// to 1, no partial credit.
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	twoDaysAgo := today.AddDate(0, 0, -2)

	assert.Equal(t, 1, nextStreak(&twoDaysAgo, today, 7))
}

func TestNextStreak_ResetOnLongGap(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	lastMonth := today.AddDate(0, -1, 0)

	assert.Equal(t, 1, nextStreak(&lastMonth, today, 30))
}

func TestNextStreak_MonthBoundary(t *testing.T) {
	today := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	lastDayOfMarch := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 6, nextStreak(&lastDayOfMarch, today, 5))
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, sameDay(morning, night))
	assert.False(t, sameDay(night, nextDay))
}

func TestTruncateToDay(t *testing.T) {
	late := time.Date(2026, 3, 10, 23, 59, 59, 999, time.UTC)
	day := truncateToDay(late)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), day)
}

func TestMiner_Cycle(t *testing.T) {
	m := &Miner{CycleHours: 4}
	assert.Equal(t, 4*time.Hour, m.Cycle())
}

func TestMiner_IsMining(t *testing.T) {
	m := &Miner{}
	assert.False(t, m.IsMining())

	now := time.Now()
	m.MiningStartedAt = &now
	assert.True(t, m.IsMining())
}

type fakeMinerRepo struct {
	miner *Miner
}

func (r *fakeMinerRepo) GetMiner(
	_ context.Context,
	_ string,
) (*Miner, error) {
	return r.miner, nil
}

func (r *fakeMinerRepo) GetMinerForUpdate(
	_ context.Context,
	_ string,
) (*Miner, error) {
	return r.miner, nil
}

func (r *fakeMinerRepo) SetMiningStarted(
	_ context.Context,
	_ string,
	at time.Time,
) error {
	r.miner.MiningStartedAt = &at
	return nil
}

func (r *fakeMinerRepo) FinishCycle(
	_ context.Context,
	_ string,
	claimedAt time.Time,
) error {
	r.miner.MiningStartedAt = nil
	r.miner.LastClaimAt = &claimedAt
	return nil
}

func (r *fakeMinerRepo) UpdateMinerConfig(
	_ context.Context,
	_ string,
	ratePerHour, capacity int64,
	cycleHours int,
) error {
	r.miner.RatePerHour = ratePerHour
	r.miner.Capacity = capacity
	r.miner.CycleHours = cycleHours
	return nil
}

func (r *fakeMinerRepo) UpdateCheckin(
	_ context.Context,
	_ string,
	date time.Time,
	streak int,
) error {
	r.miner.LastCheckinDate = &date
	r.miner.DailyStreakCount = streak
	return nil
}

func (r *fakeMinerRepo) ListLedger(
	_ context.Context,
	_ string,
	_, _ int,
) ([]LedgerEntry, error) {
	return nil, nil
}

type fakeLedger struct {
	balance int64
	social  int64
	entries []LedgerEntry
}

func (l *fakeLedger) Credit(
	_ context.Context,
	userID string,
	amount int64,
	reason string,
) (int64, error) {
	l.balance += amount
	l.entries = append(l.entries, LedgerEntry{
		UserID:       userID,
		Amount:       amount,
		Reason:       reason,
		BalanceAfter: l.balance,
	})
	return l.balance, nil
}

func (l *fakeLedger) Debit(
	_ context.Context,
	userID string,
	amount int64,
	reason string,
) (int64, error) {
	if amount > l.balance {
		return 0, ErrInsufficientBalance
	}
	l.balance -= amount
	l.entries = append(l.entries, LedgerEntry{
		UserID:       userID,
		Amount:       -amount,
		Reason:       reason,
		BalanceAfter: l.balance,
	})
	return l.balance, nil
}

func (l *fakeLedger) CreditSocial(
	_ context.Context,
	_ string,
	amount int64,
) (int64, error) {
	l.social += amount
	return l.social, nil
}

func newTestService(
	miner *Miner,
	ledger *fakeLedger,
	cfg config.EconomyConfig,
	at time.Time,
) *Service {
	repo := &fakeMinerRepo{miner: miner}
	return &Service{
		cfg:    cfg,
		now:    func() time.Time { return at },
		reader: repo,
		inTx: func(ctx context.Context, fn func(q core.DBTX) error) error {
			return fn(nil)
		},
		repoFor:   func(core.DBTX) Repository { return repo },
		ledgerFor: func(core.DBTX) BalanceLedger { return ledger },
	}
}

func testEconomyConfig() config.EconomyConfig {
	return config.EconomyConfig{
		DailyCheckinBonus:        50,
		StreakBonus:              50,
		StreakThreshold:          5,
		MiningCycleHours:         4,
		InitialMiningRatePerHour: 10,
		InitialMiningCapacity:    50,
	}
}

func TestStartMining_SecondStartRejected(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	miner := &Miner{RatePerHour: 10, Capacity: 50, CycleHours: 4}
	svc := newTestService(miner, &fakeLedger{}, testEconomyConfig(), now)

	result, err := svc.StartMining(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(4*time.Hour), result.CompletesAt)

	_, err = svc.StartMining(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrAlreadyMining)
}

func TestStartMining_RejectedWhileUnclaimedCycleComplete(t *testing.T) {
	// A matured cycle still counts as mining until it is claimed.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	startedAt := now.Add(-10 * time.Hour)
	miner := &Miner{
		RatePerHour:     10,
		Capacity:        50,
		CycleHours:      4,
		MiningStartedAt: &startedAt,
	}
	svc := newTestService(miner, &fakeLedger{}, testEconomyConfig(), now)

	_, err := svc.StartMining(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrAlreadyMining)
}

func TestClaimZP_WithoutActiveCycle(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	miner := &Miner{RatePerHour: 10, Capacity: 50, CycleHours: 4}
	ledger := &fakeLedger{}
	svc := newTestService(miner, ledger, testEconomyConfig(), now)

	_, err := svc.ClaimZP(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrNotMining)
	assert.Empty(t, ledger.entries)
}

func TestClaimZP_SettlesAndResets(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	startedAt := now.Add(-4 * time.Hour)
	miner := &Miner{
		RatePerHour:     10,
		Capacity:        50,
		CycleHours:      4,
		MiningStartedAt: &startedAt,
	}
	ledger := &fakeLedger{balance: 100}
	svc := newTestService(miner, ledger, testEconomyConfig(), now)

	result, err := svc.ClaimZP(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, int64(40), result.Payout)
	assert.Equal(t, int64(140), result.NewBalance)
	assert.False(t, miner.IsMining())

	require.Len(t, ledger.entries, 1)
	assert.Equal(t, ReasonMiningClaim, ledger.entries[0].Reason)

	// The reset frees the miner for a fresh cycle.
	_, err = svc.StartMining(context.Background(), "user-1")
	assert.NoError(t, err)
}

func TestCheckIn_BaseBonusBelowThreshold(t *testing.T) {
	// Streak days 1 through 4 pay the base bonus only.
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	miner := &Miner{LastCheckinDate: &yesterday, DailyStreakCount: 3}
	ledger := &fakeLedger{}
	svc := newTestService(miner, ledger, testEconomyConfig(), now)

	result, err := svc.CheckIn(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 4, result.Streak)
	assert.Equal(t, int64(50), result.Bonus)
	assert.Equal(t, int64(50), result.NewBalance)
	assert.Equal(t, int64(50), result.SocialCapitalScore)
}

func TestCheckIn_StreakBonusAtThreshold(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	miner := &Miner{LastCheckinDate: &yesterday, DailyStreakCount: 4}
	ledger := &fakeLedger{}
	svc := newTestService(miner, ledger, testEconomyConfig(), now)

	result, err := svc.CheckIn(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 5, result.Streak)
	assert.Equal(t, int64(100), result.Bonus)
	assert.Equal(t, int64(100), result.NewBalance)
	assert.Equal(t, int64(100), result.SocialCapitalScore)
}

func TestCheckIn_SameDayRejected(t *testing.T) {
	now := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	miner := &Miner{LastCheckinDate: &today, DailyStreakCount: 2}
	ledger := &fakeLedger{}
	svc := newTestService(miner, ledger, testEconomyConfig(), now)

	_, err := svc.CheckIn(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.Empty(t, ledger.entries)
	assert.Equal(t, 2, miner.DailyStreakCount)
}

func TestUpgradeMiner_DebitsCostAndApplies(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	miner := &Miner{RatePerHour: 10, Capacity: 50, CycleHours: 4}
	ledger := &fakeLedger{balance: 200}
	svc := newTestService(miner, ledger, testEconomyConfig(), now)

	result, err := svc.UpgradeMiner(
		context.Background(),
		"user-1",
		UpgradeMiningSpeed,
	)
	require.NoError(t, err)

	assert.Equal(t, int64(150), result.Cost)
	assert.Equal(t, int64(15), result.RatePerHour)
	assert.Equal(t, int64(50), result.NewBalance)
	assert.Equal(t, int64(15), miner.RatePerHour)
}

func TestUpgradeMiner_RejectedMidCycle(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	startedAt := now.Add(-time.Hour)
	miner := &Miner{
		RatePerHour:     10,
		Capacity:        50,
		CycleHours:      4,
		MiningStartedAt: &startedAt,
	}
	ledger := &fakeLedger{balance: 5000}
	svc := newTestService(miner, ledger, testEconomyConfig(), now)

	_, err := svc.UpgradeMiner(
		context.Background(),
		"user-1",
		UpgradeMiningSpeed,
	)
	assert.ErrorIs(t, err, ErrAlreadyMining)
	assert.Empty(t, ledger.entries)
	assert.Equal(t, int64(10), miner.RatePerHour)
}

func TestUpgradeMiner_InsufficientBalance(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	miner := &Miner{RatePerHour: 10, Capacity: 50, CycleHours: 4}
	ledger := &fakeLedger{balance: 100}
	svc := newTestService(miner, ledger, testEconomyConfig(), now)

	_, err := svc.UpgradeMiner(
		context.Background(),
		"user-1",
		UpgradeMiningSpeed,
	)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, int64(100), ledger.balance)
	assert.Equal(t, int64(10), miner.RatePerHour)
}
