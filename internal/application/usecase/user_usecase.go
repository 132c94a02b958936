package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
)

// validRoles rôles acceptés à la création/mise à jour.
var validRoles = map[string]bool{
	entity.RoleAdmin:   true,
	entity.RoleManager: true,
	entity.RoleSales:   true,
	entity.RoleSDR:     true,
}

// UserUseCase gestion des utilisateurs commerciaux (réservé admin).
type UserUseCase struct {
	repo repository.SalesUserRepository
}

// NewUserUseCase construit le cas d'usage.
func NewUserUseCase(repo repository.SalesUserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crée un utilisateur : hash bcrypt du mot de passe puis persistance.
// Retourne ErrEmailAlreadyExists si l'email est déjà pris.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleSales
	}
	if !validRoles[role] {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.SalesUser{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List liste les utilisateurs avec pagination.
func (uc *UserUseCase) List(limit, offset int) ([]*dto.UserResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Update applique une mise à jour partielle (nom, rôle, statut).
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil && *in.Name != "" {
		user.Name = *in.Name
	}
	if in.Role != nil {
		if !validRoles[*in.Role] {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.Status != nil {
		if *in.Status != "active" && *in.Status != "disabled" {
			return nil, domain.ErrInvalidInput
		}
		user.Status = *in.Status
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete supprime un utilisateur.
func (uc *UserUseCase) Delete(id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(id)
}

func toUserResponse(u *entity.SalesUser) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
