package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

var _ repository.HubSpotContactRepository = (*HubSpotContactRepo)(nil)

// HubSpotContactRepo implémentation de HubSpotContactRepository.
type HubSpotContactRepo struct {
	q Querier
}

// NewHubSpotContactRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewHubSpotContactRepository(q Querier) *HubSpotContactRepo {
	return &HubSpotContactRepo{q: q}
}

// Upsert insère ou met à jour un contact, clé = email.
func (r *HubSpotContactRepo) Upsert(c *entity.HubSpotContact) (bool, error) {
	query := `
		INSERT INTO hubspot_contacts (id, email, first_name, last_name, company, phone,
			hs_lead_status, industry, employee_count, created_at, updated_at)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (email) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			company = EXCLUDED.company,
			phone = EXCLUDED.phone,
			hs_lead_status = EXCLUDED.hs_lead_status,
			industry = EXCLUDED.industry,
			employee_count = EXCLUDED.employee_count,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)`
	var inserted bool
	err := r.q.QueryRow(context.Background(), query,
		c.ID, c.Email, c.FirstName, c.LastName, c.Company, c.Phone,
		c.HSLeadStatus, c.Industry, c.EmployeeCount, c.CreatedAt, c.UpdatedAt,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert hubspot contact: %w", err)
	}
	return inserted, nil
}

// GetByEmail récupère un contact par email.
func (r *HubSpotContactRepo) GetByEmail(email string) (*entity.HubSpotContact, error) {
	query := `
		SELECT id, email, first_name, last_name, company, phone,
			hs_lead_status, industry, employee_count, created_at, updated_at
		FROM hubspot_contacts WHERE email = lower($1)`
	var c entity.HubSpotContact
	err := r.q.QueryRow(context.Background(), query, email).Scan(
		&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Company, &c.Phone,
		&c.HSLeadStatus, &c.Industry, &c.EmployeeCount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hubspot contact: %w", err)
	}
	return &c, nil
}
