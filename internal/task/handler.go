// AngelaMos | 2026
// handler.go

package task

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ziver-app/ziver-backend/internal/core"
	"github.com/ziver-app/ziver-backend/internal/economy"
	"github.com/ziver-app/ziver-backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/tasks", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListAvailable)
		r.Post("/{taskID}/complete", h.Complete)
		r.Post("/sponsored", h.CreateSponsored)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.Create)
			r.Delete("/{taskID}", h.Deactivate)
		})
	})
}

func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	tasks, err := h.service.ListAvailable(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, TaskListResponse{Tasks: ToTaskResponseList(tasks)})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	task, err := h.service.CreateTask(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToTaskResponse(task))
}

func (h *Handler) CreateSponsored(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateSponsoredTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	task, err := h.service.CreateSponsoredTask(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidDuration) {
			core.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, economy.ErrInsufficientBalance) {
			core.JSONError(w, core.NewAppError(
				err,
				"not enough ZP to sponsor this task",
				http.StatusPaymentRequired,
				"INSUFFICIENT_BALANCE",
			))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToTaskResponse(task))
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	taskID := chi.URLParam(r, "taskID")

	result, err := h.service.Complete(r.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, ErrAlreadyCompleted) {
			core.JSONError(w, core.NewAppError(
				err,
				"task already completed",
				http.StatusConflict,
				"ALREADY_COMPLETED",
			))
			return
		}
		if errors.Is(err, ErrTaskUnavailable) {
			core.JSONError(w, core.NewAppError(
				err,
				"task is inactive or expired",
				http.StatusConflict,
				"TASK_UNAVAILABLE",
			))
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "task")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	if err := h.service.Deactivate(r.Context(), taskID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "task")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
