package repository

import "github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"

// CRMContactRepository port de persistance pour crm_contacts.
// Upsert est la primitive de l'import CSV : insertion ou mise à jour, clé = email.
type CRMContactRepository interface {
	Upsert(c *entity.CRMContact) (inserted bool, err error)
	GetByEmail(email string) (*entity.CRMContact, error)
	GetByIDs(ids []string) ([]*entity.CRMContact, error)
	UpdateStatus(id, zohoStatus string) error
}

// HubSpotContactRepository port de persistance pour hubspot_contacts.
type HubSpotContactRepository interface {
	Upsert(c *entity.HubSpotContact) (inserted bool, err error)
	GetByEmail(email string) (*entity.HubSpotContact, error)
}

// ApolloContactRepository port de persistance pour apollo_contacts.
type ApolloContactRepository interface {
	Upsert(c *entity.ApolloContact) (inserted bool, err error)
	GetByEmail(email string) (*entity.ApolloContact, error)
	GetByIDs(ids []string) ([]*entity.ApolloContact, error)
	UpdateStage(id, stage string) error
}

// BrevoActivityRepository overlay d'activité email, lecture seule.
// Une source injoignable se traduit par (nil, nil) : jamais une erreur bloquante.
type BrevoActivityRepository interface {
	GetByEmail(email string) (*entity.BrevoActivity, error)
}
