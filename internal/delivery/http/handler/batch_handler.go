package handler

import (
	"errors"

	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/pkg/response"
	"talent-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// BatchHandler exposes the scheduler-facing entry points. Partial per-item
// failures still complete with 200; only the initial selection query turns
// into a 500.
type BatchHandler struct {
	uc usecase.BatchUsecase
}

func NewBatchHandler(uc usecase.BatchUsecase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

func (h *BatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/power-matches")
	grp.Post("/generate", h.Generate)
	grp.Post("/auto-apply", h.AutoApply)
	grp.Get("/status", h.Status)
}

func (h *BatchHandler) Generate(c fiber.Ctx) error {
	sum, err := h.uc.GeneratePowerMatches(c.Context())
	if err != nil {
		return mapBatchError(err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.GenerateBatchResponse{
		Message:                "power match generation completed",
		UsersProcessed:         sum.UsersProcessed,
		UsersFailed:            sum.UsersFailed,
		TotalNewMatchesCreated: sum.TotalNewMatchesCreated,
	})
}

func (h *BatchHandler) AutoApply(c fiber.Ctx) error {
	sum, err := h.uc.AutoApplyPowerMatches(c.Context())
	if err != nil {
		return mapBatchError(err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.AutoApplyBatchResponse{
		Message:             "auto apply completed",
		MatchesProcessed:    sum.MatchesProcessed,
		ApplicationsCreated: sum.ApplicationsCreated,
		ApplicationErrors:   sum.ApplicationErrors,
		UpdateErrors:        sum.UpdateErrors,
	})
}

func (h *BatchHandler) Status(c fiber.Ctx) error {
	st, err := h.uc.LastRunStatus(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}

func mapBatchError(err error) error {
	if errors.Is(err, usecase.ErrRunInProgress) {
		return middleware.NewAppError(fiber.StatusConflict, "batch run already in progress", nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
