package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/assignment"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/auth"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/importer"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/lifecycle"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/prospects"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/usecase"
	"github.com/salesdeskhq/crm-prospects-api/internal/domain/prospect"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProspectsUC *prospects.QueryUseCase
	AssignUC    *assignment.AssignUseCase
	TraiterUC   *lifecycle.TraiterUseCase
	TerminalUC  *lifecycle.TerminalUseCase
	ListUC      *lifecycle.ListUseCase
	ImportUC    *importer.ImportUseCase
	UserUC      *usecase.UserUseCase
	DashboardUC *usecase.DashboardUseCase
	JWTSecret   string
}

// Router enregistre les routes de l'API. Toutes les routes métier sont derrière le
// Bearer token ; chaque groupe porte en plus sa permission d'action.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Routes protégées (Bearer token requis)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Vue unifiée des prospects
	prospectHandler := NewProspectHandler(deps.ProspectsUC)
	prospectsGroup := protected.Group("/prospects", RequirePermission(prospect.ActionProspectsView))
	prospectsGroup.Get("/", prospectHandler.List)
	prospectsGroup.Get("/:email", prospectHandler.GetByEmail)

	// Affectations
	assignmentHandler := NewAssignmentHandler(deps.AssignUC)
	lifecycleHandler := NewLifecycleHandler(deps.TraiterUC, deps.TerminalUC, deps.ListUC)
	assignments := protected.Group("/assignments")
	assignments.Post("/", RequirePermission(prospect.ActionAssignCreate), assignmentHandler.Assign)
	assignments.Get("/", RequirePermission(prospect.ActionAssignView), assignmentHandler.List)
	assignments.Post("/:id/traiter", RequirePermission(prospect.ActionTraiter), lifecycleHandler.Traiter)

	// Cycle de vie : traités, à rappeler, terminaux
	traites := protected.Group("/prospects-traites")
	traites.Get("/", RequirePermission(prospect.ActionAssignView), lifecycleHandler.ListTraites)
	traites.Post("/:id/valider", RequirePermission(prospect.ActionValider), lifecycleHandler.Valider)
	traites.Post("/:id/rejeter", RequirePermission(prospect.ActionRejeter), lifecycleHandler.Rejeter)
	protected.Get("/prospects-a-rappeler", RequirePermission(prospect.ActionAssignView), lifecycleHandler.ListARappeler)
	protected.Get("/prospects-valides", RequirePermission(prospect.ActionAssignView), lifecycleHandler.ListValides)
	protected.Get("/prospects-archives", RequirePermission(prospect.ActionAssignView), lifecycleHandler.ListArchives)

	// Import CSV
	importHandler := NewImportHandler(deps.ImportUC)
	protected.Post("/import/:source", RequirePermission(prospect.ActionProspectsImport), importHandler.Import)

	// Utilisateurs (admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", RequirePermission(prospect.ActionUsersManage))
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Tableau de bord
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", RequirePermission(prospect.ActionDashboardView), dashboardHandler.Stats)
}
