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
	"github.com/jhoicas/AlmacenCentral-api/internal/application/auth"
	appinventory "github.com/jhoicas/AlmacenCentral-api/internal/application/inventory"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/issues"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/orders"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/usecase"
	"github.com/jhoicas/AlmacenCentral-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/AlmacenCentral-api/internal/interfaces/http"
	"github.com/jhoicas/AlmacenCentral-api/pkg/config"
	"github.com/jhoicas/AlmacenCentral-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	stockRepo := postgres.NewCentralStockRepository(pool)
	adjRepo := postgres.NewStockAdjustmentRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	issueRepo := postgres.NewPartsIssueRepository(pool)
	scRepo := postgres.NewServiceCenterRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockUC := appinventory.NewStockLedgerUseCase(stockRepo, adjRepo, txRunner)
	poUC := orders.NewPurchaseOrderUseCase(poRepo, stockRepo, scRepo, txRunner)
	issueUC := issues.NewPartsIssueUseCase(issueRepo, scRepo, stockUC, txRunner)
	scUC := usecase.NewServiceCenterUseCase(scRepo)
	statsUC := usecase.NewStatsUseCase(stockRepo, poRepo, issueRepo)
	authUC := auth.NewAuthUseCase(userRepo, scRepo, auth.JWTConfig{
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

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén Central API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:         stockUC,
		PurchaseOrderUC: poUC,
		PartsIssueUC:    issueUC,
		ServiceCenterUC: scUC,
		StatsUC:         statsUC,
		AuthUC:          authUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
