package prospect

import "github.com/salesdeskhq/crm-prospects-api/internal/domain/entity"

// Actions protégées de l'API. Une seule table déclarative action -> rôles autorisés,
// consultée partout (middleware HTTP inclus), pour éviter la dérive entre le gating
// de l'UI et le contrôle réel côté serveur.
const (
	ActionProspectsView   = "prospects:view"
	ActionProspectsImport = "prospects:import"
	ActionAssignCreate    = "assignments:create"
	ActionAssignView      = "assignments:view"
	ActionAssignViewAll   = "assignments:view_all"
	ActionTraiter         = "lifecycle:traiter"
	ActionValider         = "lifecycle:valider"
	ActionRejeter         = "lifecycle:rejeter"
	ActionUsersManage     = "users:manage"
	ActionDashboardView   = "dashboard:view"
)

var permissionPolicy = map[string][]string{
	ActionProspectsView:   {entity.RoleAdmin, entity.RoleManager, entity.RoleSales, entity.RoleSDR},
	ActionProspectsImport: {entity.RoleAdmin, entity.RoleManager},
	ActionAssignCreate:    {entity.RoleAdmin, entity.RoleManager},
	ActionAssignView:      {entity.RoleAdmin, entity.RoleManager, entity.RoleSales, entity.RoleSDR},
	ActionAssignViewAll:   {entity.RoleAdmin, entity.RoleManager},
	ActionTraiter:         {entity.RoleAdmin, entity.RoleManager, entity.RoleSales, entity.RoleSDR},
	ActionValider:         {entity.RoleAdmin, entity.RoleManager},
	ActionRejeter:         {entity.RoleAdmin, entity.RoleManager},
	ActionUsersManage:     {entity.RoleAdmin},
	ActionDashboardView:   {entity.RoleAdmin, entity.RoleManager},
}

// Allowed indique si le rôle peut exécuter l'action. Action inconnue = refus.
func Allowed(role, action string) bool {
	for _, r := range permissionPolicy[action] {
		if r == role {
			return true
		}
	}
	return false
}
