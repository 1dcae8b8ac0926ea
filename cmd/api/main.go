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

	"github.com/jhoicas/sisbar-inventario/internal/application/activity"
	appanalytics "github.com/jhoicas/sisbar-inventario/internal/application/analytics"
	"github.com/jhoicas/sisbar-inventario/internal/application/auth"
	"github.com/jhoicas/sisbar-inventario/internal/application/inventory"
	"github.com/jhoicas/sisbar-inventario/internal/application/ports"
	"github.com/jhoicas/sisbar-inventario/internal/application/report"
	"github.com/jhoicas/sisbar-inventario/internal/application/usecase"
	infrapdf "github.com/jhoicas/sisbar-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/sisbar-inventario/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/sisbar-inventario/internal/infrastructure/redis"
	"github.com/jhoicas/sisbar-inventario/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/sisbar-inventario/internal/interfaces/http"
	"github.com/jhoicas/sisbar-inventario/pkg/config"
	"github.com/jhoicas/sisbar-inventario/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Eventos post-commit: Redis si está configurado, si no se descartan.
	var events ports.EventPublisher = ports.NopPublisher{}
	if cfg.Redis.URL != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, eventos deshabilitados")
		} else {
			defer client.Close()
			events = infraredis.NewEventPublisher(client, cfg.Redis.Channel)
			log.Info().Str("channel", cfg.Redis.Channel).Msg("publicación de eventos en redis")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := activity.NewRecorder(activityRepo, log)
	ledger := inventory.NewStockLedger(txRunner)
	generator := inventory.NewAlertGenerator(productRepo, alertRepo, events, log, cfg.Alerts.AutoResolve)

	stockUC := inventory.NewStockUseCase(ledger, productRepo, movementRepo, generator, recorder, events, log)
	alertUC := inventory.NewAlertUseCase(alertRepo, generator, recorder)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo, txRunner, ledger, recorder)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo, recorder)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, recorder)
	userUC := usecase.NewUserUseCase(userRepo, recorder, events, log)
	deletedUC := usecase.NewDeletedUseCase(productRepo, categoryRepo, supplierRepo, userRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, alertRepo, movementRepo, userRepo, activityRepo)
	exportUC := report.NewExportUseCase(productRepo, categoryRepo, infrapdf.NewMarotoPDFGenerator(), recorder)
	authUC := auth.NewAuthUseCase(userRepo, recorder, events, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	var alertsJob *scheduler.AlertsJob
	if cfg.Alerts.IntervalMinutes > 0 {
		alertsJob, err = scheduler.NewAlertsJob(generator, time.Duration(cfg.Alerts.IntervalMinutes)*time.Minute, log)
		if err != nil {
			log.Fatal().Err(err).Msg("job de alertas")
		}
		alertsJob.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sisbar Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		SupplierUC:  supplierUC,
		StockUC:     stockUC,
		AlertUC:     alertUC,
		Activity:    recorder,
		DashboardUC: dashboardUC,
		ExportUC:    exportUC,
		DeletedUC:   deletedUC,
		JWTSecret:   cfg.JWT.Secret,
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
	if alertsJob != nil {
		if err := alertsJob.Stop(); err != nil {
			log.Error().Err(err).Msg("apagado del job de alertas")
		}
	}

	log.Info().Msg("aplicación detenida")
}
