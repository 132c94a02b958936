package repository

import "github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"

// AssignmentRepository port de persistance pour sales_assignments.
// Create retourne domain.ErrDuplicate si le couple (sales_user_id, lead_email) possède
// déjà une affectation active (index unique en base, pas une vérification applicative).
// Delete retourne domain.ErrNotFound si la ligne n'existe plus : une transition
// concurrente l'a consommée et la transaction appelante doit être annulée.
type AssignmentRepository interface {
	Create(a *entity.Assignment) error
	GetByID(id string) (*entity.Assignment, error)
	ListBySalesUser(salesUserID string, limit, offset int) ([]*entity.Assignment, error)
	ListAll(limit, offset int) ([]*entity.Assignment, error)
	Delete(id string) error
}
