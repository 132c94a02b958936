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

var _ repository.ApolloContactRepository = (*ApolloContactRepo)(nil)

// ApolloContactRepo implémentation de ApolloContactRepository.
type ApolloContactRepo struct {
	q Querier
}

// NewApolloContactRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewApolloContactRepository(q Querier) *ApolloContactRepo {
	return &ApolloContactRepo{q: q}
}

// Upsert insère ou met à jour un contact, clé = email.
func (r *ApolloContactRepo) Upsert(c *entity.ApolloContact) (bool, error) {
	query := `
		INSERT INTO apollo_contacts (id, email, first_name, last_name, company, phone,
			stage, industry, employee_count, annual_revenue, created_at, updated_at)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (email) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			company = EXCLUDED.company,
			phone = EXCLUDED.phone,
			stage = EXCLUDED.stage,
			industry = EXCLUDED.industry,
			employee_count = EXCLUDED.employee_count,
			annual_revenue = EXCLUDED.annual_revenue,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0)`
	var inserted bool
	err := r.q.QueryRow(context.Background(), query,
		c.ID, c.Email, c.FirstName, c.LastName, c.Company, c.Phone,
		c.Stage, c.Industry, c.EmployeeCount, c.AnnualRevenue, c.CreatedAt, c.UpdatedAt,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("upsert apollo contact: %w", err)
	}
	return inserted, nil
}

// GetByEmail récupère un contact par email.
func (r *ApolloContactRepo) GetByEmail(email string) (*entity.ApolloContact, error) {
	query := `
		SELECT id, email, first_name, last_name, company, phone,
			stage, industry, employee_count, annual_revenue, created_at, updated_at
		FROM apollo_contacts WHERE email = lower($1)`
	var c entity.ApolloContact
	err := r.q.QueryRow(context.Background(), query, email).Scan(
		&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Company, &c.Phone,
		&c.Stage, &c.Industry, &c.EmployeeCount, &c.AnnualRevenue, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get apollo contact: %w", err)
	}
	return &c, nil
}

// GetByIDs récupère les contacts des IDs donnés. Les IDs inconnus sont simplement absents.
func (r *ApolloContactRepo) GetByIDs(ids []string) ([]*entity.ApolloContact, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, email, first_name, last_name, company, phone,
			stage, industry, employee_count, annual_revenue, created_at, updated_at
		FROM apollo_contacts WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get apollo contacts by ids: %w", err)
	}
	defer rows.Close()
	var list []*entity.ApolloContact
	for rows.Next() {
		var c entity.ApolloContact
		if err := rows.Scan(&c.ID, &c.Email, &c.FirstName, &c.LastName, &c.Company, &c.Phone,
			&c.Stage, &c.Industry, &c.EmployeeCount, &c.AnnualRevenue, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan apollo contact: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// UpdateStage propage un statut vers la fiche source (variante "mettre à jour les sources").
func (r *ApolloContactRepo) UpdateStage(id, stage string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE apollo_contacts SET stage = $2, updated_at = $3 WHERE id = $1`,
		id, stage, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update apollo contact stage: %w", err)
	}
	return nil
}
