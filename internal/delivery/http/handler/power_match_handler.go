package handler

import (
	"errors"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type PowerMatchHandler struct {
	uc usecase.PowerMatchUsecase
}

func NewPowerMatchHandler(uc usecase.PowerMatchUsecase) *PowerMatchHandler {
	return &PowerMatchHandler{uc: uc}
}

func (h *PowerMatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/power-matches")
	grp.Post("/:match_id/viewed", h.MarkViewed)
}

func (h *PowerMatchHandler) MarkViewed(c fiber.Ctx) error {
	subscriberID, ok := c.Locals(middleware.CtxSubscriberIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	m, err := h.uc.MarkViewed(c.Context(), matchID, subscriberID)
	if err != nil {
		return mapPowerMatchError(err)
	}

	out := dto.PowerMatchResponse{
		ID:            m.ID,
		SubscriberID:  m.SubscriberID,
		JobID:         m.JobID,
		State:         string(m.State),
		MatchScore:    m.MatchScore,
		ApplicationID: m.ApplicationID,
		CreatedAt:     m.CreatedAt,
		ViewedAt:      m.ViewedAt,
		AppliedAt:     m.AppliedAt,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapPowerMatchError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrPowerMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Power match not found", nil, err)
	case errors.Is(err, usecase.ErrPowerMatchApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Power match already applied", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
