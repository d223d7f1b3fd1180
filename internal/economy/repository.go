// AngelaMos | 2026
// repository.go

package economy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ziver-app/ziver-backend/internal/core"
)

const minerColumns = `
	id, zp_balance, social_capital_score,
	mining_rate_zp_per_hour, mining_capacity_zp, mining_cycle_hours,
	mining_started_at, last_claim_at,
	last_checkin_date, daily_streak_count`

type Repository interface {
	GetMiner(ctx context.Context, userID string) (*Miner, error)
	GetMinerForUpdate(ctx context.Context, userID string) (*Miner, error)
	SetMiningStarted(ctx context.Context, userID string, at time.Time) error
	FinishCycle(ctx context.Context, userID string, claimedAt time.Time) error
	UpdateMinerConfig(
		ctx context.Context,
		userID string,
		ratePerHour, capacity int64,
		cycleHours int,
	) error
	UpdateCheckin(
		ctx context.Context,
		userID string,
		date time.Time,
		streak int,
	) error
	ListLedger(
		ctx context.Context,
		userID string,
		limit, offset int,
	) ([]LedgerEntry, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetMiner(
	ctx context.Context,
	userID string,
) (*Miner, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`, minerColumns)

	return r.getMiner(ctx, query, userID)
}

// GetMinerForUpdate locks the user row for the remainder of the
// transaction. Every state transition on the miner goes through this so
// two racing requests for the same account serialize.
func (r *repository) GetMinerForUpdate(
	ctx context.Context,
	userID string,
) (*Miner, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`, minerColumns)

	return r.getMiner(ctx, query, userID)
}

func (r *repository) getMiner(
	ctx context.Context,
	query, userID string,
) (*Miner, error) {
	var miner Miner
	err := r.db.GetContext(ctx, &miner, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get miner: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get miner: %w", err)
	}

	return &miner, nil
}

func (r *repository) SetMiningStarted(
	ctx context.Context,
	userID string,
	at time.Time,
) error {
	query := `
		UPDATE users
		SET mining_started_at = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execOne(ctx, "set mining started", query, userID, at)
}

func (r *repository) FinishCycle(
	ctx context.Context,
	userID string,
	claimedAt time.Time,
) error {
	query := `
		UPDATE users
		SET mining_started_at = NULL, last_claim_at = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execOne(ctx, "finish cycle", query, userID, claimedAt)
}

func (r *repository) UpdateMinerConfig(
	ctx context.Context,
	userID string,
	ratePerHour, capacity int64,
	cycleHours int,
) error {
	query := `
		UPDATE users
		SET mining_rate_zp_per_hour = $2,
		    mining_capacity_zp = $3,
		    mining_cycle_hours = $4,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execOne(
		ctx,
		"update miner config",
		query,
		userID,
		ratePerHour,
		capacity,
		cycleHours,
	)
}

func (r *repository) UpdateCheckin(
	ctx context.Context,
	userID string,
	date time.Time,
	streak int,
) error {
	query := `
		UPDATE users
		SET last_checkin_date = $2, daily_streak_count = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	return r.execOne(ctx, "update checkin", query, userID, date, streak)
}

func (r *repository) ListLedger(
	ctx context.Context,
	userID string,
	limit, offset int,
) ([]LedgerEntry, error) {
	query := `
		SELECT id, user_id, amount, reason, balance_after, created_at
		FROM zp_ledger
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	var entries []LedgerEntry
	err := r.db.SelectContext(ctx, &entries, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}

	return entries, nil
}

func (r *repository) execOne(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}
