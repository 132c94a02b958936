package entity

import "time"

// Rôles applicatifs. La table des permissions (prospect.Allowed) décide ce que chacun peut faire.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleSales   = "sales"
	RoleSDR     = "sdr"
)

// SalesUser représente un utilisateur commercial ou SDR de la plateforme.
type SalesUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`   // admin | manager | sales | sdr
	Status       string    `json:"status"` // active | disabled
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
