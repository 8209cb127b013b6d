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

	"github.com/jhoicas/labstock-api/internal/application/audit"
	"github.com/jhoicas/labstock-api/internal/application/auth"
	"github.com/jhoicas/labstock-api/internal/application/inventory"
	"github.com/jhoicas/labstock-api/internal/application/reports"
	"github.com/jhoicas/labstock-api/internal/application/transfer"
	"github.com/jhoicas/labstock-api/internal/infrastructure/export"
	"github.com/jhoicas/labstock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/labstock-api/internal/infrastructure/redisbus"
	httpRouter "github.com/jhoicas/labstock-api/internal/interfaces/http"
	"github.com/jhoicas/labstock-api/pkg/config"
	"github.com/jhoicas/labstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	itemRepo := postgres.NewStockItemRepository(pool)
	labRepo := postgres.NewLabRepository(pool)
	transferRepo := postgres.NewTransferRecordRepository(pool)
	actionRepo := postgres.NewActionRecordRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Events are optional: without Redis every publish is a no-op.
	var notifier inventory.Notifier = redisbus.NoopNotifier{}
	if cfg.Redis.Addr != "" {
		bus, err := redisbus.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Redis connection")
		}
		defer bus.Close()
		notifier = bus
	}

	inventoryUC := inventory.NewUseCase(txRunner, itemRepo, labRepo, notifier, log)
	transferUC := transfer.NewUseCase(txRunner, itemRepo, labRepo, notifier, log)
	auditUC := audit.NewUseCase(transferRepo, actionRepo)
	reportsUC := reports.NewUseCase(itemRepo, labRepo,
		export.NewMarotoPDFGenerator(), export.NewEtreeSheetGenerator())
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Labstock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InventoryUC: inventoryUC,
		TransferUC:  transferUC,
		AuditUC:     auditUC,
		ReportsUC:   reportsUC,
		LabRepo:     labRepo,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
