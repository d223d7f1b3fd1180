// AngelaMos | 2026
// service_test.go

package referral

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziver-app/ziver-backend/internal/config"
	"github.com/ziver-app/ziver-backend/internal/core"
	"github.com/ziver-app/ziver-backend/internal/economy"
)

func TestTrack_SelfReferralRejected(t *testing.T) {
	svc := NewService(nil, nil, config.AppConfig{}, config.EconomyConfig{})

	err := svc.Track(context.Background(), "user-1", "user-1")
	assert.ErrorIs(t, err, ErrSelfReferral)
}

func TestDeletionPenalty_HalfOfReward(t *testing.T) {
	svc := NewService(nil, nil, config.AppConfig{}, config.EconomyConfig{
		ReferralInitialReward:   1000,
		ReferralDeletionCostPct: 0.5,
	})

	assert.Equal(t, int64(500), svc.DeletionPenalty())
}

func TestDeletionPenalty_FlooredToWholeZP(t *testing.T) {
	svc := NewService(nil, nil, config.AppConfig{}, config.EconomyConfig{
		ReferralInitialReward:   25,
		ReferralDeletionCostPct: 0.5,
	})

	assert.Equal(t, int64(12), svc.DeletionPenalty())
}

func TestReferralLink(t *testing.T) {
	svc := NewService(nil, nil, config.AppConfig{
		ReferralURL: "https://ziver.app/join",
	}, config.EconomyConfig{})

	link := svc.ReferralLink("7f9c0a42-9f64-4a5e-bd6e-1f2d3c4b5a69")
	assert.Equal(
		t,
		"https://ziver.app/join?ref=7f9c0a42-9f64-4a5e-bd6e-1f2d3c4b5a69",
		link,
	)
}

type fakeReferralRepo struct {
	users    map[string]bool
	referred map[string]bool
	edges    []*Referral
	roster   []ReferredUser
}

func (r *fakeReferralRepo) LockUser(_ context.Context, userID string) error {
	if !r.users[userID] {
		return fmt.Errorf("lock user: %w", core.ErrNotFound)
	}
	return nil
}

func (r *fakeReferralRepo) UserExists(
	_ context.Context,
	userID string,
) (bool, error) {
	return r.users[userID], nil
}

func (r *fakeReferralRepo) CountByReferrer(
	_ context.Context,
	referrerID string,
) (int, error) {
	count := 0
	for _, e := range r.edges {
		if e.ReferrerID == referrerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeReferralRepo) ReferredExists(
	_ context.Context,
	referredID string,
) (bool, error) {
	return r.referred[referredID], nil
}

func (r *fakeReferralRepo) Create(_ context.Context, ref *Referral) error {
	if r.referred == nil {
		r.referred = map[string]bool{}
	}
	r.referred[ref.ReferredID] = true
	r.edges = append(r.edges, ref)
	return nil
}

func (r *fakeReferralRepo) GetByID(
	_ context.Context,
	id string,
) (*Referral, error) {
	for _, e := range r.edges {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("get referral: %w", core.ErrNotFound)
}

func (r *fakeReferralRepo) Delete(_ context.Context, id string) error {
	for i, e := range r.edges {
		if e.ID == id {
			r.edges = append(r.edges[:i], r.edges[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete referral: %w", core.ErrNotFound)
}

func (r *fakeReferralRepo) ListByReferrer(
	_ context.Context,
	_ string,
) ([]ReferredUser, error) {
	return r.roster, nil
}

type fakeZPLedger struct {
	balance int64
	debits  []int64
	credits []int64
}

func (l *fakeZPLedger) Credit(
	_ context.Context,
	_ string,
	amount int64,
	_ string,
) (int64, error) {
	l.balance += amount
	l.credits = append(l.credits, amount)
	return l.balance, nil
}

func (l *fakeZPLedger) Debit(
	_ context.Context,
	_ string,
	amount int64,
	_ string,
) (int64, error) {
	if amount > l.balance {
		return 0, economy.ErrInsufficientBalance
	}
	l.balance -= amount
	l.debits = append(l.debits, amount)
	return l.balance, nil
}

func (l *fakeZPLedger) CreditSocial(
	_ context.Context,
	_ string,
	amount int64,
) (int64, error) {
	return 0, nil
}

func newTestService(
	repo *fakeReferralRepo,
	ledger *fakeZPLedger,
	cfg config.EconomyConfig,
) *Service {
	return &Service{
		app:    config.AppConfig{ReferralURL: "https://ziver.app/refer"},
		cfg:    cfg,
		reader: repo,
		inTx: func(ctx context.Context, fn func(q core.DBTX) error) error {
			return fn(nil)
		},
		repoFor:   func(core.DBTX) Repository { return repo },
		ledgerFor: func(core.DBTX) economy.BalanceLedger { return ledger },
	}
}

func testReferralConfig() config.EconomyConfig {
	return config.EconomyConfig{
		MaxReferralsPerUser:     20,
		ReferralInitialReward:   1000,
		ReferralDeletionCostPct: 0.5,
	}
}

func TestTrack_CreditsReward(t *testing.T) {
	repo := &fakeReferralRepo{
		users: map[string]bool{"referrer": true, "newbie": true},
	}
	ledger := &fakeZPLedger{}
	svc := newTestService(repo, ledger, testReferralConfig())

	err := svc.Track(context.Background(), "referrer", "newbie")
	require.NoError(t, err)

	require.Len(t, repo.edges, 1)
	assert.True(t, repo.edges[0].RewardGranted)
	assert.Equal(t, []int64{1000}, ledger.credits)
}

func TestTrack_CapReachedDeniesReward(t *testing.T) {
	// The 21st referral fails and pays nothing.
	repo := &fakeReferralRepo{
		users: map[string]bool{"referrer": true, "newbie": true},
	}
	for i := 0; i < 20; i++ {
		repo.edges = append(repo.edges, &Referral{
			ID:         fmt.Sprintf("edge-%d", i),
			ReferrerID: "referrer",
			ReferredID: fmt.Sprintf("user-%d", i),
		})
	}
	ledger := &fakeZPLedger{}
	svc := newTestService(repo, ledger, testReferralConfig())

	err := svc.Track(context.Background(), "referrer", "newbie")
	assert.ErrorIs(t, err, ErrCapExceeded)
	assert.Len(t, repo.edges, 20)
	assert.Empty(t, ledger.credits)
}

func TestTrack_ReferredOnlyOnce(t *testing.T) {
	repo := &fakeReferralRepo{
		users:    map[string]bool{"referrer": true, "newbie": true},
		referred: map[string]bool{"newbie": true},
	}
	ledger := &fakeZPLedger{}
	svc := newTestService(repo, ledger, testReferralConfig())

	err := svc.Track(context.Background(), "referrer", "newbie")
	assert.ErrorIs(t, err, ErrAlreadyReferred)
	assert.Empty(t, ledger.credits)
}

func TestDelete_ChargesPenalty(t *testing.T) {
	repo := &fakeReferralRepo{
		users: map[string]bool{"referrer": true},
		edges: []*Referral{
			{ID: "edge-1", ReferrerID: "referrer", ReferredID: "friend"},
		},
	}
	ledger := &fakeZPLedger{balance: 2000}
	svc := newTestService(repo, ledger, testReferralConfig())

	newBalance, err := svc.Delete(context.Background(), "referrer", "edge-1")
	require.NoError(t, err)

	assert.Equal(t, int64(1500), newBalance)
	assert.Equal(t, []int64{500}, ledger.debits)
	assert.Empty(t, repo.edges)
}

func TestDelete_InsufficientBalanceKeepsEdge(t *testing.T) {
	// A rejected deletion mutates nothing: no debit, edge intact.
	repo := &fakeReferralRepo{
		users: map[string]bool{"referrer": true},
		edges: []*Referral{
			{ID: "edge-1", ReferrerID: "referrer", ReferredID: "friend"},
		},
	}
	ledger := &fakeZPLedger{balance: 100}
	svc := newTestService(repo, ledger, testReferralConfig())

	_, err := svc.Delete(context.Background(), "referrer", "edge-1")
	assert.ErrorIs(t, err, economy.ErrInsufficientBalance)
	assert.Equal(t, int64(100), ledger.balance)
	assert.Empty(t, ledger.debits)
	assert.Len(t, repo.edges, 1)
}

func TestDelete_NotOwnedReportsNotFound(t *testing.T) {
	// Another user's edge looks exactly like a missing one.
	repo := &fakeReferralRepo{
		users: map[string]bool{"referrer": true, "other": true},
		edges: []*Referral{
			{ID: "edge-1", ReferrerID: "other", ReferredID: "friend"},
		},
	}
	ledger := &fakeZPLedger{balance: 2000}
	svc := newTestService(repo, ledger, testReferralConfig())

	_, err := svc.Delete(context.Background(), "referrer", "edge-1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NotErrorIs(t, err, core.ErrForbidden)
	assert.Empty(t, ledger.debits)
	assert.Len(t, repo.edges, 1)
}

func TestPing_NotOwnedReportsNotFound(t *testing.T) {
	repo := &fakeReferralRepo{
		users: map[string]bool{"referrer": true, "other": true},
		edges: []*Referral{
			{ID: "edge-1", ReferrerID: "other", ReferredID: "friend"},
		},
	}
	svc := newTestService(repo, &fakeZPLedger{}, testReferralConfig())

	err := svc.Ping(context.Background(), "referrer", "edge-1")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NotErrorIs(t, err, core.ErrForbidden)
}

func TestListReferred_PreservesRepositoryOrder(t *testing.T) {
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeReferralRepo{
		roster: []ReferredUser{
			{ReferralID: "edge-1", JoinedAt: first},
			{ReferralID: "edge-2", JoinedAt: first.Add(time.Hour)},
			{ReferralID: "edge-3", JoinedAt: first.Add(2 * time.Hour)},
		},
	}
	svc := newTestService(repo, &fakeZPLedger{}, testReferralConfig())

	roster, err := svc.ListReferred(context.Background(), "referrer")
	require.NoError(t, err)

	require.Len(t, roster, 3)
	assert.Equal(t, "edge-1", roster[0].ReferralID)
	assert.Equal(t, "edge-3", roster[2].ReferralID)
}
