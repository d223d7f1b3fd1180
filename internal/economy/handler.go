// AngelaMos | 2026
// handler.go

package economy

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ziver-app/ziver-backend/internal/core"
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
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/mining", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/status", h.GetStatus)
		r.Post("/start", h.StartMining)
		r.Post("/claim", h.ClaimZP)
		r.Post("/upgrade", h.UpgradeMiner)
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/users/me/daily-checkin", h.CheckIn)
		r.Get("/users/me/ledger", h.GetLedger)
	})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	status, err := h.service.GetStatus(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, status)
}

func (h *Handler) StartMining(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	result, err := h.service.StartMining(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrAlreadyMining) {
			core.JSONError(w, core.NewAppError(
				err,
				"a mining cycle is already in progress",
				http.StatusConflict,
				"ALREADY_MINING",
			))
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) ClaimZP(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	result, err := h.service.ClaimZP(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotMining) {
			core.JSONError(w, core.NewAppError(
				err,
				"no active mining cycle to claim",
				http.StatusConflict,
				"NOT_MINING",
			))
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) UpgradeMiner(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpgradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.UpgradeMiner(r.Context(), userID, req.Target)
	if err != nil {
		if errors.Is(err, ErrAlreadyMining) {
			core.JSONError(w, core.NewAppError(
				err,
				"claim the active mining cycle before upgrading",
				http.StatusConflict,
				"ALREADY_MINING",
			))
			return
		}
		if errors.Is(err, ErrInvalidUpgrade) {
			core.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, ErrInsufficientBalance) {
			core.JSONError(w, core.NewAppError(
				err,
				"not enough ZP for this upgrade",
				http.StatusPaymentRequired,
				"INSUFFICIENT_BALANCE",
			))
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	result, err := h.service.CheckIn(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrAlreadyCheckedIn) {
			core.JSONError(w, core.NewAppError(
				err,
				"daily check-in already completed today",
				http.StatusConflict,
				"ALREADY_CHECKED_IN",
			))
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.service.GetLedger(r.Context(), userID, limit, offset)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToLedgerResponse(entries))
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
