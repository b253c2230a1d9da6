package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"commerce-api/internal/domain/entity"
	"commerce-api/internal/domain/repository"
	"commerce-api/internal/logs"
	"commerce-api/internal/usecase"
)

type LogHandler struct {
	usecase usecase.APIRequestLogUsecase
	logger  *zap.Logger
}

func NewLogHandler(usecase usecase.APIRequestLogUsecase, logger *zap.Logger) *LogHandler {
	return &LogHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// GetLogs godoc
// @Summary List API request logs
// @Tags logs
// @Produce json
// @Param limit query int false "Maximum logs (max 200)" default(50)
// @Success 200 {object} entity.APIResponse
// @Failure 500 {object} entity.APIResponse
// @Router /api/v1/logs [get]
func (h *LogHandler) GetLogs(c *fiber.Ctx) error {
	entries, err := h.usecase.List(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		h.logger.Error("Failed to list API request logs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}

	return c.JSON(entity.NewSuccessResponse(entries, "Logs retrieved successfully"))
}

// GetLog godoc
// @Summary Get an API request log
// @Description view=post returns the log in the legacy content record shape
// @Tags logs
// @Produce json
// @Param id path int true "Log ID"
// @Param view query string false "record or post" default(record)
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/logs/{id} [get]
func (h *LogHandler) GetLog(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid log id"),
		)
	}

	l, err := h.usecase.Get(c.UserContext(), int64(id))
	if err != nil {
		h.logger.Error("Failed to get API request log", zap.Int("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
	if l == nil {
		return c.Status(fiber.StatusNotFound).JSON(
			entity.NewErrorResponse("NOT_FOUND", "Log not found"),
		)
	}

	return c.JSON(entity.NewSuccessResponse(present(l, c.Query("view")), "Log retrieved successfully"))
}

// UpdateLog godoc
// @Summary Update an API request log
// @Tags logs
// @Accept json
// @Produce json
// @Param id path int true "Log ID"
// @Success 200 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/logs/{id} [put]
func (h *LogHandler) UpdateLog(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid log id"),
		)
	}

	var req entity.UpdateAPIRequestLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	l, err := h.usecase.Update(c.UserContext(), int64(id), repository.Fields(req))
	if errors.Is(err, usecase.ErrNothingUpdated) {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "No known columns to update"),
		)
	}
	if err != nil {
		h.logger.Error("Failed to update API request log", zap.Int("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
	if l == nil {
		return c.Status(fiber.StatusNotFound).JSON(
			entity.NewErrorResponse("NOT_FOUND", "Log not found"),
		)
	}

	return c.JSON(entity.NewSuccessResponse(l.Record(), "Log updated successfully"))
}

// DeleteLog godoc
// @Summary Delete an API request log
// @Tags logs
// @Produce json
// @Param id path int true "Log ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/logs/{id} [delete]
func (h *LogHandler) DeleteLog(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid log id"),
		)
	}

	deleted, err := h.usecase.Delete(c.UserContext(), int64(id))
	if err != nil {
		h.logger.Error("Failed to delete API request log", zap.Int("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(
			entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
		)
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(
			entity.NewErrorResponse("NOT_FOUND", "Log not found"),
		)
	}

	return c.JSON(entity.NewSuccessResponse(nil, "Log deleted successfully"))
}

func present(l *logs.RequestLog, view string) interface{} {
	if view == "post" {
		return l.ToMap()
	}
	return l.Record()
}
