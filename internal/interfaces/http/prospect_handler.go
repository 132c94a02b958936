package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/prospects"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
)

// ProspectHandler expose la vue unifiée des prospects (lecture seule).
type ProspectHandler struct {
	uc *prospects.QueryUseCase
}

// NewProspectHandler construit le handler.
func NewProspectHandler(uc *prospects.QueryUseCase) *ProspectHandler {
	return &ProspectHandler{uc: uc}
}

// List GET /api/prospects?page=1&pageSize=25&search=...&sources=crm&zohoStatus=...
func (h *ProspectHandler) List(c *fiber.Ctx) error {
	var in dto.UnifiedQueryRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paramètres de requête invalides"})
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByEmail GET /api/prospects/:email
func (h *ProspectHandler) GetByEmail(c *fiber.Ctx) error {
	email := c.Params("email")
	out, err := h.uc.GetByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email requis"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "aucune fiche source pour cet email"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
