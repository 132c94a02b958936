package repository

import "github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"

// ValidatedProspectRepository port pour prospects_valides (terminal, immuable : pas d'Update).
type ValidatedProspectRepository interface {
	Create(v *entity.ValidatedProspect) error
	List(salesUserID string, limit, offset int) ([]*entity.ValidatedProspect, error)
}

// ArchivedProspectRepository port pour prospects_archives (terminal, immuable : pas d'Update).
type ArchivedProspectRepository interface {
	Create(a *entity.ArchivedProspect) error
	List(salesUserID string, limit, offset int) ([]*entity.ArchivedProspect, error)
}
