package lifecycle

import (
	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

// ListUseCase lectures paginées sur les tables du cycle de vie.
type ListUseCase struct {
	processedRepo repository.ProcessedRepository
	validatedRepo repository.ValidatedProspectRepository
	archivedRepo  repository.ArchivedProspectRepository
}

// NewListUseCase construit le cas d'usage.
func NewListUseCase(
	processedRepo repository.ProcessedRepository,
	validatedRepo repository.ValidatedProspectRepository,
	archivedRepo repository.ArchivedProspectRepository,
) *ListUseCase {
	return &ListUseCase{processedRepo: processedRepo, validatedRepo: validatedRepo, archivedRepo: archivedRepo}
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ListProcessed liste les traités du stage demandé (tous si salesUserID vide).
func (uc *ListUseCase) ListProcessed(stage entity.Stage, salesUserID string, limit, offset int) ([]*entity.ProcessedProspect, error) {
	if !stage.Valid() {
		return nil, domain.ErrInvalidInput
	}
	limit, offset = clampPage(limit, offset)
	return uc.processedRepo.List(stage, salesUserID, limit, offset)
}

// ListValidated liste les prospects validés.
func (uc *ListUseCase) ListValidated(salesUserID string, limit, offset int) ([]*entity.ValidatedProspect, error) {
	limit, offset = clampPage(limit, offset)
	return uc.validatedRepo.List(salesUserID, limit, offset)
}

// ListArchived liste les prospects archivés.
func (uc *ListUseCase) ListArchived(salesUserID string, limit, offset int) ([]*entity.ArchivedProspect, error) {
	limit, offset = clampPage(limit, offset)
	return uc.archivedRepo.List(salesUserID, limit, offset)
}
