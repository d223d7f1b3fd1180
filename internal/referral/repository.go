// AngelaMos | 2026
// repository.go

package referral

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ziver-app/ziver-backend/internal/core"
)

type Repository interface {
	LockUser(ctx context.Context, userID string) error
	UserExists(ctx context.Context, userID string) (bool, error)
	CountByReferrer(ctx context.Context, referrerID string) (int, error)
	ReferredExists(ctx context.Context, referredID string) (bool, error)
	Create(ctx context.Context, ref *Referral) error
	GetByID(ctx context.Context, id string) (*Referral, error)
	Delete(ctx context.Context, id string) error
	ListByReferrer(
		ctx context.Context,
		referrerID string,
	) ([]ReferredUser, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// LockUser takes the referrer's row lock so the cap check and the edge
// insert cannot interleave with a concurrent referral for the same user.
func (r *repository) LockUser(ctx context.Context, userID string) error {
	query := `SELECT id FROM users WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`

	var id string
	err := r.db.GetContext(ctx, &id, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("lock user: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock user: %w", err)
	}

	return nil
}

func (r *repository) UserExists(
	ctx context.Context,
	userID string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND deleted_at IS NULL)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}

	return exists, nil
}

func (r *repository) CountByReferrer(
	ctx context.Context,
	referrerID string,
) (int, error) {
	query := `SELECT COUNT(*) FROM referrals WHERE referrer_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, referrerID); err != nil {
		return 0, fmt.Errorf("count referrals: %w", err)
	}

	return count, nil
}

func (r *repository) ReferredExists(
	ctx context.Context,
	referredID string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM referrals WHERE referred_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, referredID); err != nil {
		return false, fmt.Errorf("check referred exists: %w", err)
	}

	return exists, nil
}

func (r *repository) Create(ctx context.Context, ref *Referral) error {
	query := `
		INSERT INTO referrals (id, referrer_id, referred_id, reward_granted)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &ref.CreatedAt, query,
		ref.ID,
		ref.ReferrerID,
		ref.ReferredID,
		ref.RewardGranted,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create referral: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create referral: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Referral, error) {
	query := `
		SELECT id, referrer_id, referred_id, reward_granted, created_at
		FROM referrals
		WHERE id = $1`

	var ref Referral
	err := r.db.GetContext(ctx, &ref, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get referral: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get referral: %w", err)
	}

	return &ref, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM referrals WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete referral: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete referral: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete referral: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListByReferrer(
	ctx context.Context,
	referrerID string,
) ([]ReferredUser, error) {
	query := `
		SELECT r.id AS referral_id, r.referred_id, u.full_name,
		       u.social_capital_score, r.created_at AS joined_at
		FROM referrals r
		JOIN users u ON u.id = r.referred_id
		WHERE r.referrer_id = $1
		ORDER BY r.created_at ASC`

	var referred []ReferredUser
	err := r.db.SelectContext(ctx, &referred, query, referrerID)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}

	return referred, nil
}
