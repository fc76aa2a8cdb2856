package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-pro/internal/application/auth"
	"github.com/tu-usuario/taller-pro/internal/application/usecase"
	"github.com/tu-usuario/taller-pro/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CustomerUC  *usecase.CustomerUseCase
	RepairUC    *usecase.RepairUseCase
	ProductUC   *usecase.ProductUseCase
	PartsUC     *usecase.PartsUseCase
	MetricsUC   *usecase.MetricsUseCase
	UserUC      *usecase.UserUseCase
	ProfileUC   *usecase.ProfileUseCase
	DashboardUC *usecase.DashboardUseCase
	Log         *logger.Logger
}

// Router registra el middleware de sesión y las rutas de la API. La política
// de sesión corre sobre TODAS las rutas; las públicas están listadas en el
// propio middleware.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(SessionMiddleware(deps.AuthUC, deps.Log))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/login", authHandler.Login)
	app.Post("/logout", authHandler.Logout)
	app.Post("/recuperar-password", authHandler.Recover)
	app.Post("/restablecer-password", authHandler.Reset)

	// Dashboard (protegido por el middleware de sesión)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	app.Get("/", dashboardHandler.Home)

	api := app.Group("/api")

	// Clientes
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Delete("/:id", customerHandler.Delete)

	// Reparaciones
	repairs := api.Group("/repairs")
	repairHandler := NewRepairHandler(deps.RepairUC)
	repairs.Get("/", repairHandler.List)
	repairs.Post("/", repairHandler.Create)
	repairs.Get("/search", repairHandler.Search)
	repairs.Get("/:id", repairHandler.Get)
	repairs.Patch("/:id/status", repairHandler.UpdateStatus)
	repairs.Post("/:id/notes", repairHandler.AddNote)
	repairs.Patch("/:id/costs", repairHandler.UpdateCosts)
	repairs.Patch("/:id/parts-link", repairHandler.UpdateLink)
	repairs.Patch("/:id/technician", repairHandler.AssignTechnician)
	repairs.Post("/:id/complete", repairHandler.Complete)
	repairs.Patch("/:id/work", repairHandler.SaveWork)
	repairs.Post("/:id/cancel", repairHandler.Cancel)
	repairs.Get("/:id/print", repairHandler.Print)

	// Inventario
	inventory := api.Group("/inventory")
	productHandler := NewProductHandler(deps.ProductUC)
	inventory.Get("/", productHandler.List)
	inventory.Post("/", productHandler.Create)
	inventory.Get("/search", productHandler.Search)
	inventory.Post("/notify", productHandler.NotifyRestock)
	inventory.Patch("/:id", productHandler.Update)
	inventory.Delete("/:id", productHandler.Delete)

	// Mostrador de repuestos (dueño/admin)
	parts := api.Group("/parts")
	partsHandler := NewPartsHandler(deps.PartsUC)
	parts.Get("/", partsHandler.Overview)
	parts.Post("/purchased", partsHandler.MarkPurchased)
	parts.Post("/arrival", partsHandler.SetArrival)

	// Métricas
	metricsHandler := NewMetricsHandler(deps.MetricsUC)
	api.Get("/metrics", metricsHandler.ForPeriod)

	// Usuarios (admin/dueño)
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Patch("/:username", userHandler.Update)
	users.Delete("/:username", userHandler.Delete)

	// Perfil propio
	profile := api.Group("/profile")
	profileHandler := NewProfileHandler(deps.ProfileUC, deps.AuthUC)
	profile.Get("/", profileHandler.Get)
	profile.Patch("/", profileHandler.Update)
	profile.Post("/password", profileHandler.ChangePassword)
}
