package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/architectonquantum-commits/LABDEN/internal/application/analytics"
	"github.com/architectonquantum-commits/LABDEN/internal/application/auth"
	"github.com/architectonquantum-commits/LABDEN/internal/application/orders"
	"github.com/architectonquantum-commits/LABDEN/internal/application/seed"
	"github.com/architectonquantum-commits/LABDEN/internal/application/usecase"
	"github.com/architectonquantum-commits/LABDEN/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	LaboratoryUC   *usecase.LaboratoryUseCase
	DoctorUC       *usecase.DoctorUseCase
	NotificationUC *usecase.NotificationUseCase
	OrderUC        *orders.OrderUseCase
	OrderPDF       *orders.PDFUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	Seeder         *seed.Seeder
	InitSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	superadmin := RequireRole(entity.RoleSuperAdmin)
	labOrAdmin := RequireRole(entity.RoleLaboratorio, entity.RoleSuperAdmin)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Admin: inicialización (público, protegido por confirmación o secreto)
	admin := api.Group("/admin")
	adminHandler := NewAdminHandler(deps.Seeder, deps.InitSecret)
	admin.Post("/init-production-data", adminHandler.InitProductionData)
	admin.Post("/init-test-data", adminHandler.InitTestData)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))

	userHandler := NewUserHandler(deps.UserUC)
	doctorHandler := NewDoctorHandler(deps.DoctorUC)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderPDF)

	// Users
	users := protected.Group("/users")
	users.Get("/me", userHandler.Me)
	users.Put("/me", userHandler.UpdateMe)
	users.Get("/", superadmin, userHandler.List)
	users.Post("/", superadmin, userHandler.Create)
	users.Patch("/:id/status", superadmin, userHandler.SetStatus)

	// Labs
	labs := protected.Group("/labs")
	labHandler := NewLaboratoryHandler(deps.LaboratoryUC)
	labs.Get("/", superadmin, labHandler.List)
	labs.Post("/", superadmin, labHandler.Create)
	labs.Get("/:id", superadmin, labHandler.GetByID)
	labs.Put("/:id", superadmin, labHandler.Update)
	labs.Delete("/:id", superadmin, labHandler.Delete)
	labs.Patch("/:id/status", superadmin, labHandler.SetStatus)
	labs.Get("/:id/users", superadmin, userHandler.ListByLab)
	labs.Get("/:id/orders", superadmin, orderHandler.ListByLab)
	labs.Get("/:id/doctors", labOrAdmin, doctorHandler.ListByLab)

	// Doctors
	doctors := protected.Group("/doctors")
	doctors.Get("/", labOrAdmin, doctorHandler.List)
	doctors.Post("/", RequireRole(entity.RoleLaboratorio), doctorHandler.Create)
	doctors.Put("/:id", labOrAdmin, doctorHandler.Update)
	doctors.Delete("/:id", labOrAdmin, doctorHandler.Delete)

	// Orders
	ordersGroup := protected.Group("/orders")
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Post("/", RequireRole(entity.RoleDoctor, entity.RoleLaboratorio), orderHandler.Create)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", orderHandler.Update)
	ordersGroup.Patch("/:id", orderHandler.Archive)
	ordersGroup.Put("/:id/progress", labOrAdmin, orderHandler.UpdateProgress)
	ordersGroup.Get("/:id/pdf", orderHandler.PDF)

	// Notifications
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Put("/:id/read", notificationHandler.MarkRead)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
