package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"commerce-api/internal/domain/entity"
	"commerce-api/internal/usecase"
)

type FeeHandler struct {
	usecase usecase.FeeUsecase
	logger  *zap.Logger
}

func NewFeeHandler(usecase usecase.FeeUsecase, logger *zap.Logger) *FeeHandler {
	return &FeeHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// GetFees godoc
// @Summary List cart fees
// @Tags fees
// @Produce json
// @Param session path string true "Cart session"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/carts/{session}/fees [get]
func (h *FeeHandler) GetFees(c *fiber.Ctx) error {
	fees, err := h.usecase.GetFees(c.UserContext(), c.Params("session"))
	if err != nil {
		return h.internalError(c, "Failed to get fees", err)
	}

	return c.JSON(entity.NewSuccessResponse(fees, "Fees retrieved successfully"))
}

// AddFee godoc
// @Summary Add a fee to the cart
// @Description An empty id is derived from the label
// @Tags fees
// @Accept json
// @Produce json
// @Param session path string true "Cart session"
// @Param request body entity.AddFeeRequest true "Fee"
// @Success 201 {object} entity.APIResponse
// @Failure 400 {object} entity.APIResponse
// @Router /api/v1/carts/{session}/fees [post]
func (h *FeeHandler) AddFee(c *fiber.Ctx) error {
	var req entity.AddFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Invalid request body"),
		)
	}

	fees, err := h.usecase.AddFee(c.UserContext(), c.Params("session"), &req)
	if errors.Is(err, usecase.ErrFeeIDRequired) {
		return c.Status(fiber.StatusBadRequest).JSON(
			entity.NewErrorResponse("BAD_REQUEST", "Label or id is required"),
		)
	}
	if err != nil {
		return h.internalError(c, "Failed to add fee", err)
	}

	return c.Status(fiber.StatusCreated).JSON(entity.NewSuccessResponse(fees, "Fee added successfully"))
}

// GetFee godoc
// @Summary Get one cart fee
// @Tags fees
// @Produce json
// @Param session path string true "Cart session"
// @Param fee path string true "Fee ID"
// @Success 200 {object} entity.APIResponse
// @Failure 404 {object} entity.APIResponse
// @Router /api/v1/carts/{session}/fees/{fee} [get]
func (h *FeeHandler) GetFee(c *fiber.Ctx) error {
	fee, err := h.usecase.GetFee(c.UserContext(), c.Params("session"), c.Params("fee"))
	if err != nil {
		return h.internalError(c, "Failed to get fee", err)
	}
	if fee == nil {
		return c.Status(fiber.StatusNotFound).JSON(
			entity.NewErrorResponse("NOT_FOUND", "Fee not found"),
		)
	}

	return c.JSON(entity.NewSuccessResponse(fee, "Fee retrieved successfully"))
}

// Total godoc
// @Summary Sum of cart fees
// @Tags fees
// @Produce json
// @Param session path string true "Cart session"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/carts/{session}/fees/total [get]
func (h *FeeHandler) Total(c *fiber.Ctx) error {
	total, err := h.usecase.Total(c.UserContext(), c.Params("session"))
	if err != nil {
		return h.internalError(c, "Failed to total fees", err)
	}

	return c.JSON(entity.NewSuccessResponse(total, "Fee total calculated"))
}

// ResetFees godoc
// @Summary Remove every fee from the cart
// @Tags fees
// @Produce json
// @Param session path string true "Cart session"
// @Success 200 {object} entity.APIResponse
// @Router /api/v1/carts/{session}/fees [delete]
func (h *FeeHandler) ResetFees(c *fiber.Ctx) error {
	if err := h.usecase.Reset(c.UserContext(), c.Params("session")); err != nil {
		return h.internalError(c, "Failed to reset fees", err)
	}

	return c.JSON(entity.NewSuccessResponse(nil, "Fees cleared"))
}

func (h *FeeHandler) internalError(c *fiber.Ctx, msg string, err error) error {
	h.logger.Error(msg, zap.String("session", c.Params("session")), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(
		entity.NewErrorResponse("INTERNAL_ERROR", err.Error()),
	)
}
