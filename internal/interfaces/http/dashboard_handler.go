package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/usecase"
)

// DashboardHandler chiffres du tableau de bord admin.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construit le handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(stats)
}
