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

var _ repository.SalesUserRepository = (*SalesUserRepo)(nil)

// SalesUserRepo implémentation de SalesUserRepository (utilisable avec pool ou tx).
type SalesUserRepo struct {
	q Querier
}

// NewSalesUserRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewSalesUserRepository(q Querier) *SalesUserRepo {
	return &SalesUserRepo{q: q}
}

// Create persiste un nouvel utilisateur commercial.
func (r *SalesUserRepo) Create(user *entity.SalesUser) error {
	query := `
		INSERT INTO sales_users (id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert sales user: %w", err)
	}
	return nil
}

// GetByID récupère un utilisateur par ID.
func (r *SalesUserRepo) GetByID(id string) (*entity.SalesUser, error) {
	query := `
		SELECT id, email, password_hash, name, role, status, created_at, updated_at
		FROM sales_users WHERE id = $1`
	var u entity.SalesUser
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales user: %w", err)
	}
	return &u, nil
}

// FindByEmail récupère un utilisateur par email (login).
func (r *SalesUserRepo) FindByEmail(email string) (*entity.SalesUser, error) {
	query := `
		SELECT id, email, password_hash, name, role, status, created_at, updated_at
		FROM sales_users WHERE lower(email) = lower($1)`
	var u entity.SalesUser
	err := r.q.QueryRow(context.Background(), query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find sales user by email: %w", err)
	}
	return &u, nil
}

// List liste les utilisateurs avec pagination.
func (r *SalesUserRepo) List(limit, offset int) ([]*entity.SalesUser, error) {
	query := `
		SELECT id, email, password_hash, name, role, status, created_at, updated_at
		FROM sales_users ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales users: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesUser
	for rows.Next() {
		var u entity.SalesUser
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sales user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update met à jour un utilisateur.
func (r *SalesUserRepo) Update(user *entity.SalesUser) error {
	query := `
		UPDATE sales_users SET name = $2, role = $3, status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.Role, user.Status, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales user: %w", err)
	}
	return nil
}

// Delete supprime un utilisateur par ID.
func (r *SalesUserRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sales user: %w", err)
	}
	return nil
}
