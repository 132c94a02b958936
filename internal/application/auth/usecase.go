package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/dto"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/repository"
	"github.com/salesdeskhq/crm-prospects-api/pkg/jwt"
)

// JWTConfig configuration pour la génération de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase cas d'usage d'authentification : login uniquement.
// La création de comptes passe par l'administration (pas d'auto-inscription).
type AuthUseCase struct {
	userRepo repository.SalesUserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construit le cas d'usage d'auth.
func NewAuthUseCase(userRepo repository.SalesUserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login vérifie email/password, génère le JWT et retourne token + utilisateur.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: &dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Role:      user.Role,
			Status:    user.Status,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
