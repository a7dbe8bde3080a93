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

type InvitationHandler struct {
	uc usecase.InvitationUsecase
}

func NewInvitationHandler(uc usecase.InvitationUsecase) *InvitationHandler {
	return &InvitationHandler{uc: uc}
}

func (h *InvitationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/invitations")
	grp.Post("/:invitation_id/respond", h.Respond)
}

type respondRequest struct {
	Decision string `json:"decision"`
}

func (h *InvitationHandler) Respond(c fiber.Ctx) error {
	subscriberID, ok := c.Locals(middleware.CtxSubscriberIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	invitationID, err := uuid.Parse(c.Params("invitation_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req respondRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	inv, err := h.uc.Respond(c.Context(), invitationID, subscriberID, req.Decision)
	if err != nil {
		return mapInvitationError(err)
	}

	out := dto.InvitationResponse{
		ID:          inv.ID,
		JobID:       inv.JobID,
		CandidateID: inv.CandidateID,
		EmployerID:  inv.EmployerID,
		Status:      string(inv.Status),
		Message:     inv.Message,
		CreatedAt:   inv.CreatedAt,
		RespondedAt: inv.RespondedAt,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func mapInvitationError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidDecision):
		return middleware.NewAppError(fiber.StatusBadRequest, "Decision must be accepted or declined", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrNotInvitedCandidate):
		return middleware.NewAppError(fiber.StatusForbidden, "Not the invited candidate", nil, err)
	case errors.Is(err, usecase.ErrInvitationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Invitation not found", nil, err)
	case errors.Is(err, usecase.ErrInvitationNotPending):
		return middleware.NewAppError(fiber.StatusConflict, "Invitation already responded to", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
