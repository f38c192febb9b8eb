package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/architectonquantum-commits/LABDEN/internal/application/analytics"
	"github.com/architectonquantum-commits/LABDEN/internal/application/auth"
	"github.com/architectonquantum-commits/LABDEN/internal/application/orders"
	"github.com/architectonquantum-commits/LABDEN/internal/application/seed"
	"github.com/architectonquantum-commits/LABDEN/internal/application/usecase"
	infrapdf "github.com/architectonquantum-commits/LABDEN/internal/infrastructure/pdf"
	"github.com/architectonquantum-commits/LABDEN/internal/infrastructure/postgres"
	httpRouter "github.com/architectonquantum-commits/LABDEN/internal/interfaces/http"
)

const swaggerFile = "./docs/swagger.json"

func runServer() error {
	ctx := context.Background()
	cfg, log, pool, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("strict_transitions", cfg.Orders.StrictTransitions).
		Msg("iniciando aplicación")

	userRepo := postgres.NewUserRepository(pool)
	labRepo := postgres.NewLaboratoryRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, labRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	orderUC := orders.NewOrderUseCase(orderRepo, userRepo, labRepo, notificationUC,
		cfg.Orders.StrictTransitions, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + httpRouter.HeaderInitSecret,
	}))

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "LABDEN API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         usecase.NewUserUseCase(userRepo, labRepo),
		LaboratoryUC:   usecase.NewLaboratoryUseCase(labRepo),
		DoctorUC:       usecase.NewDoctorUseCase(userRepo, labRepo, orderRepo),
		NotificationUC: notificationUC,
		OrderUC:        orderUC,
		OrderPDF:       orders.NewPDFUseCase(orderUC, infrapdf.NewMarotoPDFGenerator()),
		DashboardUC:    appanalytics.NewDashboardUseCase(orderRepo, labRepo, userRepo),
		Seeder:         seed.NewSeeder(postgres.NewTxRunner(pool), log.Zerolog()),
		InitSecret:     cfg.Seed.InitSecret,
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
	return nil
}
