// AngelaMos | 2026
// dto.go

package task

import (
	"time"
)

type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,min=3,max=120"`
	Description string `json:"description" validate:"required,min=3,max=2000"`
	ZPReward    int64  `json:"zp_reward"   validate:"required,gt=0,lte=1000000"`
}

type CreateSponsoredTaskRequest struct {
	Title        string `json:"title"         validate:"required,min=3,max=120"`
	Description  string `json:"description"   validate:"required,min=3,max=2000"`
	ZPReward     int64  `json:"zp_reward"     validate:"required,gt=0,lte=1000000"`
	DurationDays int    `json:"duration_days" validate:"required,oneof=1 5 15"`
}

type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ZPReward    int64      `json:"zp_reward"`
	TaskType    string     `json:"task_type"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

type CompleteResult struct {
	TaskID     string `json:"task_id"`
	Reward     int64  `json:"reward"`
	NewBalance int64  `json:"new_balance"`
}

func ToTaskResponse(t *Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		ZPReward:    t.ZPReward,
		TaskType:    t.TaskType,
		ExpiresAt:   t.ExpiresAt,
		CreatedAt:   t.CreatedAt,
	}
}

func ToTaskResponseList(tasks []Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToTaskResponse(&t))
	}
	return out
}
