// AngelaMos | 2026
// entity.go

package task

import (
	"time"
)

type Task struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	ZPReward    int64      `db:"zp_reward"`
	TaskType    string     `db:"task_type"`
	SponsorID   *string    `db:"sponsor_id"`
	IsActive    bool       `db:"is_active"`
	ExpiresAt   *time.Time `db:"expires_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (t *Task) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}

type Completion struct {
	ID        string    `db:"id"`
	TaskID    string    `db:"task_id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

const (
	TypeInApp     = "in_app"
	TypeSponsored = "sponsored"
)
