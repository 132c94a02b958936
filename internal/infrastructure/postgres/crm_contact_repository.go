package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

var _ repository.CRMContactRepository = (*CRMContactRepo)(nil)

// CRMContactRepo implémentation de CRMContactRepository (utilisable avec pool ou tx).
type CRMContactRepo struct {
	q Querier
}

// NewCRMContactRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewCRMContactRepository(q Querier) *CRMContactRepo {
	return &CRMContactRepo{q: q}
}

// Upsert insère ou met à jour un contact, clé = email.
// Le booléen retourné distingue insertion (true) et mise à jour (false) pour le bilan d'import.
func (r *CRMContactRepo) Upsert(c *entity.CRMContact) (bool, error) {
	query := `
		INSERT INTO crm_contacts (id, email, first_name, last_name, company, phone, mobile,
			zoho_status, industry, employee_count, created_at, updated_at)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (email) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			company = EXCLUDED.company,
			phone = EXCLUDED.phone,
			mobile = EXCLUDED.mobile,
			zoho_status = EXCLUDED.zoho_status,
			industry = EXCLUDED.industry,
			employee_count = EXCLUDED.employee_count,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)`
	var inserted bool
	err := r.q.QueryRow(context.Background(), query,
		c.ID, c.Email, c.FirstName, c.LastName, c.Company, c.Phone, c.Mobile,
		c.ZohoStatus, c.Industry, c.EmployeeCount, c.CreatedAt, c.UpdatedAt,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert crm contact: %w", err)
	}
	return inserted, nil
}

// GetByEmail récupère un contact par email.
func (r *CRMContactRepo) GetByEmail(email string) (*entity.CRMContact, error) {
	query := `
		SELECT id, email, first_name, last_name, company, phone, mobile,
			zoho_status, industry, employee_count, created_at, updated_at
		FROM crm_contacts WHERE email = lower($1)`
	var c entity.CRMContact
	err := r.q.QueryRow(context.Background(), query, email).Scan(
		&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Company, &c.Phone, &c.Mobile,
		&c.ZohoStatus, &c.Industry, &c.EmployeeCount, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get crm contact: %w", err)
	}
	return &c, nil
}

// GetByIDs récupère les contacts des IDs donnés. Les IDs inconnus sont simplement absents.
func (r *CRMContactRepo) GetByIDs(ids []string) ([]*entity.CRMContact, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, email, first_name, last_name, company, phone, mobile,
			zoho_status, industry, employee_count, created_at, updated_at
		FROM crm_contacts WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get crm contacts by ids: %w", err)
	}
	defer rows.Close()
	var list []*entity.CRMContact
	for rows.Next() {
		var c entity.CRMContact
		if err := rows.Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Company, &c.Phone, &c.Mobile,
			&c.ZohoStatus, &c.Industry, &c.EmployeeCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan crm contact: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// UpdateStatus propage un statut vers la fiche source (variante "mettre à jour les sources").
func (r *CRMContactRepo) UpdateStatus(id, zohoStatus string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE crm_contacts SET zoho_status = $2, updated_at = $3 WHERE id = $1`,
		id, zohoStatus, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update crm contact status: %w", err)
	}
	return nil
}
