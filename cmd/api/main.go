package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/salesdeskhq/crm-prospects-api/internal/application/assignment"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/auth"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/importer"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/lifecycle"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/prospects"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/reminder"
	"github.com/salesdeskhq/crm-prospects-api/internal/application/usecase"
	"github.com/salesdeskhq/crm-prospects-api/internal/infrastructure/mail"
	"github.com/salesdeskhq/crm-prospects-api/internal/infrastructure/postgres"
	"github.com/salesdeskhq/crm-prospects-api/internal/infrastructure/worker"
	httpRouter "github.com/salesdeskhq/crm-prospects-api/internal/interfaces/http"
	"github.com/salesdeskhq/crm-prospects-api/pkg/config"
	"github.com/salesdeskhq/crm-prospects-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	// Repositories (pool ; les transitions passent par le TxRunner)
	userRepo := postgres.NewSalesUserRepository(pool)
	crmRepo := postgres.NewCRMContactRepository(pool)
	hubspotRepo := postgres.NewHubSpotContactRepository(pool)
	apolloRepo := postgres.NewApolloContactRepository(pool)
	brevoRepo := postgres.NewBrevoActivityRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	processedRepo := postgres.NewProcessedRepository(pool)
	validatedRepo := postgres.NewValidatedProspectRepository(pool)
	archivedRepo := postgres.NewArchivedProspectRepository(pool)
	unifiedRepo := postgres.NewUnifiedProspectRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cas d'usage
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	prospectsUC := prospects.NewQueryUseCase(unifiedRepo, crmRepo, hubspotRepo, apolloRepo, brevoRepo)
	assignUC := assignment.NewAssignUseCase(assignmentRepo, userRepo, crmRepo, apolloRepo)
	traiterUC := lifecycle.NewTraiterUseCase(txRunner, assignmentRepo)
	terminalUC := lifecycle.NewTerminalUseCase(txRunner, processedRepo)
	listUC := lifecycle.NewListUseCase(processedRepo, validatedRepo, archivedRepo)
	importUC := importer.NewImportUseCase(crmRepo, hubspotRepo, apolloRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	dashboardUC := usecase.NewDashboardUseCase(dashboardRepo)

	// Worker de rappels (mail SMTP)
	if cfg.Reminder.Enabled {
		sender := mail.NewReminderSender(cfg.SMTP)
		reminderUC := reminder.NewReminderUseCase(processedRepo, userRepo, sender, log)
		reminderWorker := worker.NewReminderWorker(
			reminderUC,
			time.Duration(cfg.Reminder.IntervalMins)*time.Minute,
			log,
		)
		go reminderWorker.Start(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local : http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CRM Prospects API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProspectsUC: prospectsUC,
		AssignUC:    assignUC,
		TraiterUC:   traiterUC,
		TerminalUC:  terminalUC,
		ListUC:      listUC,
		ImportUC:    importUC,
		UserUC:      userUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")
	cancel() // arrête le worker de rappels

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
