// AngelaMos | 2026
// repository.go

package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ziver-app/ziver-backend/internal/core"
)

const taskColumns = `
	id, title, description, zp_reward, task_type, sponsor_id,
	is_active, expires_at, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Task, error)
	ListAvailable(ctx context.Context, userID string) ([]Task, error)
	SetActive(ctx context.Context, id string, active bool) error
	CreateCompletion(ctx context.Context, completion *Completion) error
	HasCompleted(ctx context.Context, taskID, userID string) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO tasks (
			id, title, description, zp_reward, task_type,
			sponsor_id, is_active, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, task, query,
		task.ID,
		task.Title,
		task.Description,
		task.ZPReward,
		task.TaskType,
		task.SponsorID,
		task.IsActive,
		task.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Task, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM tasks WHERE id = $1`,
		taskColumns,
	)
	return r.getTask(ctx, query, id)
}

func (r *repository) GetByIDForUpdate(
	ctx context.Context,
	id string,
) (*Task, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM tasks WHERE id = $1 FOR UPDATE`,
		taskColumns,
	)
	return r.getTask(ctx, query, id)
}

func (r *repository) getTask(
	ctx context.Context,
	query, id string,
) (*Task, error) {
	var task Task
	err := r.db.GetContext(ctx, &task, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get task: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	return &task, nil
}

// ListAvailable returns active, unexpired tasks the user has not yet
// completed, freshest first.
func (r *repository) ListAvailable(
	ctx context.Context,
	userID string,
) ([]Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks t
		WHERE t.is_active
		  AND (t.expires_at IS NULL OR t.expires_at > NOW())
		  AND NOT EXISTS (
			SELECT 1 FROM task_completions c
			WHERE c.task_id = t.id AND c.user_id = $1
		  )
		ORDER BY t.created_at DESC`,
		prefixColumns("t"))

	var tasks []Task
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (r *repository) SetActive(
	ctx context.Context,
	id string,
	active bool,
) error {
	query := `
		UPDATE tasks
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, active)
	if err != nil {
		return fmt.Errorf("set task active: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set task active: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set task active: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CreateCompletion(
	ctx context.Context,
	completion *Completion,
) error {
	query := `
		INSERT INTO task_completions (id, task_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &completion.CreatedAt, query,
		completion.ID,
		completion.TaskID,
		completion.UserID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create completion: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create completion: %w", err)
	}

	return nil
}

func (r *repository) HasCompleted(
	ctx context.Context,
	taskID, userID string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM task_completions
			WHERE task_id = $1 AND user_id = $2
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, taskID, userID)
	if err != nil {
		return false, fmt.Errorf("check completion: %w", err)
	}

	return exists, nil
}

func prefixColumns(alias string) string {
	return fmt.Sprintf(`
		%[1]s.id, %[1]s.title, %[1]s.description, %[1]s.zp_reward,
		%[1]s.task_type, %[1]s.sponsor_id, %[1]s.is_active,
		%[1]s.expires_at, %[1]s.created_at, %[1]s.updated_at`, alias)
}
