package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/importer"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
)

// ImportHandler gère l'import CSV vers les tables sources.
type ImportHandler struct {
	uc *importer.ImportUseCase
}

// NewImportHandler construit le handler.
func NewImportHandler(uc *importer.ImportUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// sourceTables alias d'URL -> nom de table.
var sourceTables = map[string]string{
	"crm":     entity.SourceTableCRM,
	"hubspot": entity.SourceTableHubSpot,
	"apollo":  entity.SourceTableApollo,
}

// Import POST /api/import/:source — multipart, champ "file".
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	table, ok := sourceTables[c.Params("source")]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "source inconnue: attendu crm, hubspot ou apollo"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "fichier CSV requis (champ multipart \"file\")"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "impossible de lire le fichier"})
	}
	defer f.Close()

	report, err := h.uc.Import(table, f)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "en-tête CSV invalide: colonne email requise"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(report)
}
