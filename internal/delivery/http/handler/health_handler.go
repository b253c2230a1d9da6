package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"commerce-api/internal/domain/entity"
)

type HealthHandler struct {
	version string
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{version: "1.0.0"}
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} entity.APIResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(entity.NewSuccessResponse(HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   h.version,
	}, "Service is healthy"))
}
