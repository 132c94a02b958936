package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/lifecycle"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/prospect"
)

// LifecycleHandler gère les transitions de cycle de vie et les lectures associées.
type LifecycleHandler struct {
	traiterUC  *lifecycle.TraiterUseCase
	terminalUC *lifecycle.TerminalUseCase
	listUC     *lifecycle.ListUseCase
}

// NewLifecycleHandler construit le handler.
func NewLifecycleHandler(
	traiterUC *lifecycle.TraiterUseCase,
	terminalUC *lifecycle.TerminalUseCase,
	listUC *lifecycle.ListUseCase,
) *LifecycleHandler {
	return &LifecycleHandler{traiterUC: traiterUC, terminalUC: terminalUC, listUC: listUC}
}

// Traiter POST /api/assignments/:id/traiter
func (h *LifecycleHandler) Traiter(c *fiber.Ctx) error {
	var in dto.TraiterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	processed, err := h.traiterUC.Traiter(c.Context(), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCallbackRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CALLBACK_REQUIRED", Message: "ce statut exige une date de rappel", Field: "callbackDate"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "statut et actionDate sont requis"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "affectation introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(processed)
}

// Valider POST /api/prospects-traites/:id/valider
func (h *LifecycleHandler) Valider(c *fiber.Ctx) error {
	var in dto.ValiderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	validated, err := h.terminalUC.Valider(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPastDate):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PAST_DATE", Message: "la date de RDV doit être dans le futur", Field: "rdvDate"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stage, commentaire et rdvDate sont requis"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "prospect traité introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(validated)
}

// Rejeter POST /api/prospects-traites/:id/rejeter
func (h *LifecycleHandler) Rejeter(c *fiber.Ctx) error {
	var in dto.RejeterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	archived, err := h.terminalUC.Rejeter(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stage et commentaire sont requis"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "prospect traité introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(archived)
}

// scopedSalesUserID restreint la lecture au périmètre de l'appelant pour les rôles
// sans vue globale. La décision vient de la table de permissions, pas d'une action voisine.
func scopedSalesUserID(c *fiber.Ctx) string {
	salesUserID := c.Query("salesUserId")
	if !prospect.Allowed(GetRole(c), prospect.ActionAssignViewAll) {
		salesUserID = GetUserID(c)
	}
	return salesUserID
}

// ListTraites GET /api/prospects-traites
func (h *LifecycleHandler) ListTraites(c *fiber.Ctx) error {
	return h.listProcessed(c, entity.StageTraite)
}

// ListARappeler GET /api/prospects-a-rappeler
func (h *LifecycleHandler) ListARappeler(c *fiber.Ctx) error {
	return h.listProcessed(c, entity.StageARappeler)
}

func (h *LifecycleHandler) listProcessed(c *fiber.Ctx, stage entity.Stage) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.listUC.ListProcessed(stage, scopedSalesUserID(c), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if list == nil {
		list = []*entity.ProcessedProspect{}
	}
	return c.JSON(list)
}

// ListValides GET /api/prospects-valides
func (h *LifecycleHandler) ListValides(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.listUC.ListValidated(scopedSalesUserID(c), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if list == nil {
		list = []*entity.ValidatedProspect{}
	}
	return c.JSON(list)
}

// ListArchives GET /api/prospects-archives
func (h *LifecycleHandler) ListArchives(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.listUC.ListArchived(scopedSalesUserID(c), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if list == nil {
		list = []*entity.ArchivedProspect{}
	}
	return c.JSON(list)
}
