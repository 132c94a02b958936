package repository

import "github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"

// SalesUserRepository port de persistance pour les utilisateurs commerciaux.
type SalesUserRepository interface {
	Create(user *entity.SalesUser) error
	GetByID(id string) (*entity.SalesUser, error)
	FindByEmail(email string) (*entity.SalesUser, error)
	List(limit, offset int) ([]*entity.SalesUser, error)
	Update(user *entity.SalesUser) error
	Delete(id string) error
}
