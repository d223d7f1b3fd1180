// AngelaMos | 2026
// handler.go

package referral

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziver-app/ziver-backend/internal/core"
	"github.com/ziver-app/ziver-backend/internal/economy"
	"github.com/ziver-app/ziver-backend/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/referrals", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Delete("/{referralID}", h.Delete)
		r.Post("/{referralID}/ping", h.Ping)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	referred, err := h.service.ListReferred(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ListResponse{
		Referrals:       ToReferredUserResponses(referred),
		ReferralLink:    h.service.ReferralLink(userID),
		DeletionPenalty: h.service.DeletionPenalty(),
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	referralID := chi.URLParam(r, "referralID")

	newBalance, err := h.service.Delete(r.Context(), userID, referralID)
	if err != nil {
		if errors.Is(err, economy.ErrInsufficientBalance) {
			core.JSONError(w, core.NewAppError(
				err,
				"not enough ZP to cover the referral deletion penalty",
				http.StatusPaymentRequired,
				"INSUFFICIENT_BALANCE",
			))
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "referral")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, DeleteResponse{
		PenaltyCharged: h.service.DeletionPenalty(),
		NewBalance:     newBalance,
	})
}

func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	referralID := chi.URLParam(r, "referralID")

	if err := h.service.Ping(r.Context(), userID, referralID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "referral")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
