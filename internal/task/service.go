// AngelaMos | 2026
// service.go

package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ziver-app/ziver-backend/internal/core"
	"github.com/ziver-app/ziver-backend/internal/economy"
)

var (
	ErrAlreadyCompleted = errors.New("task already completed")
	ErrTaskUnavailable  = errors.New("task is not available")
	ErrInvalidDuration  = errors.New("unsupported sponsorship duration")
)

// Sponsored listing prices by duration. Longer visibility costs
// disproportionately more.
var sponsoredCosts = map[int]int64{
	1:  10000,
	5:  30000,
	15: 100000,
}

type Service struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewService(db *sqlx.DB) *Service {
	return &Service{
		db:  db,
		now: time.Now,
	}
}

// CreateTask publishes a platform task. Admin only, no cost.
func (s *Service) CreateTask(
	ctx context.Context,
	req CreateTaskRequest,
) (*Task, error) {
	task := &Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		ZPReward:    req.ZPReward,
		TaskType:    TypeInApp,
		IsActive:    true,
	}

	if err := NewRepository(s.db).Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// CreateSponsoredTask publishes a paid listing. The sponsor's ZP is
// debited in the same transaction that creates the task, so a failed
// insert never charges and a failed debit never publishes.
func (s *Service) CreateSponsoredTask(
	ctx context.Context,
	sponsorID string,
	req CreateSponsoredTaskRequest,
) (*Task, error) {
	cost, ok := sponsoredCosts[req.DurationDays]
	if !ok {
		return nil, fmt.Errorf(
			"duration %d days: %w",
			req.DurationDays,
			ErrInvalidDuration,
		)
	}

	var task *Task

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		ledger := economy.NewLedger(tx)

		_, err := ledger.Debit(
			ctx,
			sponsorID,
			cost,
			economy.ReasonSponsoredTask,
		)
		if err != nil {
			return err
		}

		expiresAt := s.now().UTC().AddDate(0, 0, req.DurationDays)
		task = &Task{
			ID:          uuid.New().String(),
			Title:       req.Title,
			Description: req.Description,
			ZPReward:    req.ZPReward,
			TaskType:    TypeSponsored,
			SponsorID:   &sponsorID,
			IsActive:    true,
			ExpiresAt:   &expiresAt,
		}

		return NewRepository(tx).Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (s *Service) ListAvailable(
	ctx context.Context,
	userID string,
) ([]Task, error) {
	return NewRepository(s.db).ListAvailable(ctx, userID)
}

// Complete pays out a task reward exactly once per user. The task row
// lock plus the unique completion constraint make a double-submit race
// resolve to a single credit.
func (s *Service) Complete(
	ctx context.Context,
	userID, taskID string,
) (*CompleteResult, error) {
	var result *CompleteResult

	err := core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := NewRepository(tx)
		ledger := economy.NewLedger(tx)

		task, err := repo.GetByIDForUpdate(ctx, taskID)
		if err != nil {
			return err
		}

		if !task.IsActive || task.IsExpired(s.now().UTC()) {
			return ErrTaskUnavailable
		}

		done, err := repo.HasCompleted(ctx, taskID, userID)
		if err != nil {
			return err
		}
		if done {
			return ErrAlreadyCompleted
		}

		completion := &Completion{
			ID:     uuid.New().String(),
			TaskID: taskID,
			UserID: userID,
		}
		if err := repo.CreateCompletion(ctx, completion); err != nil {
			if errors.Is(err, core.ErrDuplicateKey) {
				return ErrAlreadyCompleted
			}
			return err
		}

		newBalance, err := ledger.Credit(
			ctx,
			userID,
			task.ZPReward,
			economy.ReasonTaskReward,
		)
		if err != nil {
			return err
		}

		result = &CompleteResult{
			TaskID:     taskID,
			Reward:     task.ZPReward,
			NewBalance: newBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) Deactivate(ctx context.Context, taskID string) error {
	return NewRepository(s.db).SetActive(ctx, taskID, false)
}
