// AngelaMos | 2026
// ledger.go

package economy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ziver-app/ziver-backend/internal/core"
)

// BalanceLedger is the mutation surface services compose into their
// transactions. *Ledger is the SQL-backed implementation.
type BalanceLedger interface {
	Credit(
		ctx context.Context,
		userID string,
		amount int64,
		reason string,
	) (int64, error)
	Debit(
		ctx context.Context,
		userID string,
		amount int64,
		reason string,
	) (int64, error)
	CreditSocial(
		ctx context.Context,
		userID string,
		amount int64,
	) (int64, error)
}

// Ledger mutates zp_balance and appends an audit row per mutation. It is
// built over DBTX so callers compose it into whatever transaction holds
// the user row lock; the guard in Debit never lets a balance go negative.
type Ledger struct {
	db core.DBTX
}

func NewLedger(db core.DBTX) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) Credit(
	ctx context.Context,
	userID string,
	amount int64,
	reason string,
) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("credit: negative amount: %w", core.ErrInvalidInput)
	}

	query := `
		UPDATE users
		SET zp_balance = zp_balance + $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING zp_balance`

	var newBalance int64
	err := l.db.GetContext(ctx, &newBalance, query, userID, amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("credit: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("credit: %w", err)
	}

	if err := l.record(ctx, userID, amount, reason, newBalance); err != nil {
		return 0, err
	}

	return newBalance, nil
}

func (l *Ledger) Debit(
	ctx context.Context,
	userID string,
	amount int64,
	reason string,
) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("debit: negative amount: %w", core.ErrInvalidInput)
	}

	query := `
		UPDATE users
		SET zp_balance = zp_balance - $2, updated_at = NOW()
		WHERE id = $1 AND zp_balance >= $2 AND deleted_at IS NULL
		RETURNING zp_balance`

	var newBalance int64
	err := l.db.GetContext(ctx, &newBalance, query, userID, amount)
	if errors.Is(err, sql.ErrNoRows) {
		exists, exErr := l.userExists(ctx, userID)
		if exErr != nil {
			return 0, exErr
		}
		if !exists {
			return 0, fmt.Errorf("debit: %w", core.ErrNotFound)
		}
		return 0, ErrInsufficientBalance
	}
	if err != nil {
		return 0, fmt.Errorf("debit: %w", err)
	}

	if err := l.record(ctx, userID, -amount, reason, newBalance); err != nil {
		return 0, err
	}

	return newBalance, nil
}

// CreditSocial bumps the reputation counter. Social capital has no debit
// path and no ledger trail, it only ever grows.
func (l *Ledger) CreditSocial(
	ctx context.Context,
	userID string,
	amount int64,
) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf(
			"credit social: negative amount: %w",
			core.ErrInvalidInput,
		)
	}

	query := `
		UPDATE users
		SET social_capital_score = social_capital_score + $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING social_capital_score`

	var newScore int64
	err := l.db.GetContext(ctx, &newScore, query, userID, amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("credit social: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("credit social: %w", err)
	}

	return newScore, nil
}

func (l *Ledger) record(
	ctx context.Context,
	userID string,
	amount int64,
	reason string,
	balanceAfter int64,
) error {
	query := `
		INSERT INTO zp_ledger (id, user_id, amount, reason, balance_after)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := l.db.ExecContext(
		ctx,
		query,
		uuid.New().String(),
		userID,
		amount,
		reason,
		balanceAfter,
	)
	if err != nil {
		return fmt.Errorf("record ledger entry: %w", err)
	}

	return nil
}

func (l *Ledger) userExists(
	ctx context.Context,
	userID string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND deleted_at IS NULL)`

	var exists bool
	if err := l.db.GetContext(ctx, &exists, query, userID); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}

	return exists, nil
}
