package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implémentation de AssignmentRepository.
// L'index unique sur (sales_user_id, lead_email) des lignes actives porte la garantie
// anti-doublon ; ici on se contente de traduire 23505 en domain.ErrDuplicate.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// Create persiste une affectation active.
func (r *AssignmentRepo) Create(a *entity.Assignment) error {
	query := `
		INSERT INTO sales_assignments (id, sales_user_id, source_table, source_id, lead_email,
			status, custom_data, assigned_by, assigned_at)
		VALUES ($1, $2, $3, $4, lower($5), $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.SalesUserID, a.SourceTable, a.SourceID, a.LeadEmail,
		a.Status, a.CustomData, a.AssignedBy, a.AssignedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// GetByID récupère une affectation par ID.
func (r *AssignmentRepo) GetByID(id string) (*entity.Assignment, error) {
	query := `
		SELECT id, sales_user_id, source_table, source_id, lead_email,
			status, custom_data, assigned_by, assigned_at
		FROM sales_assignments WHERE id = $1`
	var a entity.Assignment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.SalesUserID, &a.SourceTable, &a.SourceID, &a.LeadEmail,
		&a.Status, &a.CustomData, &a.AssignedBy, &a.AssignedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return &a, nil
}

// ListBySalesUser liste les affectations actives d'un commercial.
func (r *AssignmentRepo) ListBySalesUser(salesUserID string, limit, offset int) ([]*entity.Assignment, error) {
	query := `
		SELECT id, sales_user_id, source_table, source_id, lead_email,
			status, custom_data, assigned_by, assigned_at
		FROM sales_assignments WHERE sales_user_id = $1
		ORDER BY assigned_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, salesUserID, limit, offset)
}

// ListAll liste toutes les affectations actives (vue admin).
func (r *AssignmentRepo) ListAll(limit, offset int) ([]*entity.Assignment, error) {
	query := `
		SELECT id, sales_user_id, source_table, source_id, lead_email,
			status, custom_data, assigned_by, assigned_at
		FROM sales_assignments
		ORDER BY assigned_at DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *AssignmentRepo) list(query string, args ...any) ([]*entity.Assignment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Assignment
	for rows.Next() {
		var a entity.Assignment
		if err := rows.Scan(&a.ID, &a.SalesUserID, &a.SourceTable, &a.SourceID, &a.LeadEmail,
			&a.Status, &a.CustomData, &a.AssignedBy, &a.AssignedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete supprime une affectation par ID (fin de la phase active du cycle de vie).
// Zéro ligne supprimée = une transition concurrente a déjà consommé l'affectation :
// ErrNotFound fait échouer (et annuler) la transaction perdante.
func (r *AssignmentRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM sales_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
