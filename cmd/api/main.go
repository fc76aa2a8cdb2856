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

	"github.com/tu-usuario/taller-pro/internal/application/auth"
	"github.com/tu-usuario/taller-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/taller-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/taller-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/taller-pro/internal/interfaces/http"
	"github.com/tu-usuario/taller-pro/pkg/config"
	"github.com/tu-usuario/taller-pro/pkg/logger"
	"github.com/tu-usuario/taller-pro/pkg/token"
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

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	repairRepo := postgres.NewRepairRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	metricsRepo := postgres.NewMetricsRepository(pool)

	// Módulo de sesión: credenciales en memoria, bloqueo por intentos y
	// token firmado en cookie.
	store := auth.NewCredentialStore(auth.NewHasher(cfg.Auth.LegacyPasswords))
	lockout := auth.NewLockoutTracker(cfg.Auth.LockoutThreshold, cfg.Auth.LockoutWindow)
	codec := token.NewCodec(token.Config{
		Secret:     cfg.Auth.Secret,
		TTL:        cfg.Auth.TokenTTL,
		MaxAge:     cfg.Auth.MaxTokenAge,
		RenewAfter: cfg.Auth.RenewAfter,
		LegacySign: cfg.Auth.LegacyTokens,
	})
	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		jwtSecret = cfg.Auth.Secret
	}
	authUC := auth.NewUseCase(store, lockout, codec, userRepo,
		jwtSecret, cfg.JWT.Issuer, cfg.JWT.ExpMinutes, log)

	pdfGenerator := infrapdf.NewRepairOrderGenerator(cfg.App.Name)

	customerUC := usecase.NewCustomerUseCase(customerRepo, log)
	repairUC := usecase.NewRepairUseCase(repairRepo, customerRepo, userRepo, pdfGenerator, log)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, customerRepo, repairRepo, log)
	partsUC := usecase.NewPartsUseCase(repairRepo, log)
	metricsUC := usecase.NewMetricsUseCase(metricsRepo, userRepo, log)
	userUC := usecase.NewUserUseCase(store, userRepo, log)
	profileUC := usecase.NewProfileUseCase(store, authUC, log)
	dashboardUC := usecase.NewDashboardUseCase(repairRepo)

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
		Title:    "Taller Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		RepairUC:    repairUC,
		ProductUC:   productUC,
		PartsUC:     partsUC,
		MetricsUC:   metricsUC,
		UserUC:      userUC,
		ProfileUC:   profileUC,
		DashboardUC: dashboardUC,
		Log:         log,
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
