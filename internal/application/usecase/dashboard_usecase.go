package usecase

import (
	"context"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

// DashboardUseCase chiffres du tableau de bord admin (lecture seule).
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construit le cas d'usage.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetStats retourne les volumes par étape et par commercial.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*repository.DashboardStats, error) {
	return uc.repo.GetStats(ctx)
}
