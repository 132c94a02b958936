package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/assignment"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/prospect"
)

// AssignmentHandler gère l'affectation de prospects aux commerciaux.
type AssignmentHandler struct {
	uc *assignment.AssignUseCase
}

// NewAssignmentHandler construit le handler.
func NewAssignmentHandler(uc *assignment.AssignUseCase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

// Assign POST /api/assignments
func (h *AssignmentHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	report, err := h.uc.Assign(GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "salesUserId, sourceTable et selectedRowIds sont requis"})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "commercial introuvable ou désactivé"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// List GET /api/assignments?salesUserId=...&limit=20&offset=0
// Un commercial ne voit que ses propres affectations ; admin et manager voient tout.
func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	salesUserID := c.Query("salesUserId")
	if !prospect.Allowed(GetRole(c), prospect.ActionAssignViewAll) {
		// Rôle sans vue globale : restreindre au périmètre de l'appelant.
		salesUserID = GetUserID(c)
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(salesUserID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if list == nil {
		list = []*entity.Assignment{}
	}
	return c.JSON(list)
}
