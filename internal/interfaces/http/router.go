package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sisbar-inventario/internal/application/activity"
	appanalytics "github.com/jhoicas/sisbar-inventario/internal/application/analytics"
	"github.com/jhoicas/sisbar-inventario/internal/application/auth"
	"github.com/jhoicas/sisbar-inventario/internal/application/inventory"
	"github.com/jhoicas/sisbar-inventario/internal/application/report"
	"github.com/jhoicas/sisbar-inventario/internal/application/usecase"
	"github.com/jhoicas/sisbar-inventario/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	SupplierUC  *usecase.SupplierUseCase
	StockUC     *inventory.StockUseCase
	AlertUC     *inventory.AlertUseCase
	Activity    *activity.Recorder
	DashboardUC *appanalytics.DashboardUseCase
	ExportUC    *report.ExportUseCase
	DeletedUC   *usecase.DeletedUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
// Los permisos finos (gestionar inventario, borrar, aprobar) se validan en los casos de uso;
// RequireRole solo corta temprano las rutas exclusivas de administración.
// RequireActiveSession revalida en cada petición que el usuario siga activo y con el rol del token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireActiveSession(deps.UserUC))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/password", authHandler.ChangePassword)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	inv := protected.Group("/inventory")
	inv.Post("/discount", inventoryHandler.Discount)
	inv.Post("/add", inventoryHandler.Add)
	inv.Post("/return", inventoryHandler.Return)
	inv.Post("/adjust", inventoryHandler.Adjust)
	inv.Get("/lookup/:code", inventoryHandler.Lookup)
	inv.Get("/movements", inventoryHandler.ListMovements)

	// Alertas
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts := protected.Group("/alerts")
	alerts.Get("/", alertHandler.List)
	alerts.Get("/unread-count", alertHandler.UnreadCount)
	alerts.Post("/generate", alertHandler.Generate)
	alerts.Post("/:id/read", alertHandler.MarkRead)
	alerts.Post("/:id/resolve", alertHandler.Resolve)

	// Productos
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)
	products.Post("/:id/restore", productHandler.Restore)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.CategoryUC, deps.SupplierUC)
	categories := protected.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Put("/:id", catalogHandler.UpdateCategory)
	categories.Put("/:id/active", catalogHandler.SetCategoryActive)
	categories.Get("/:id/subcategories", catalogHandler.ListSubcategories)
	categories.Post("/:id/subcategories", catalogHandler.CreateSubcategory)

	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", catalogHandler.ListSuppliers)
	suppliers.Post("/", catalogHandler.CreateSupplier)
	suppliers.Get("/:id", catalogHandler.GetSupplier)
	suppliers.Put("/:id", catalogHandler.UpdateSupplier)
	suppliers.Put("/:id/active", catalogHandler.SetSupplierActive)

	// Usuarios (solo administradores)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin))
	users.Get("/", userHandler.List)
	users.Put("/:id", userHandler.Update)
	users.Post("/:id/approve", userHandler.Approve)
	users.Put("/:id/active", userHandler.SetActive)
	users.Post("/:id/reset-password", userHandler.ResetPassword)

	// Papelera: registros desactivados para restaurar
	protected.Get("/deleted", RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin), NewDeletedHandler(deps.DeletedUC).List)

	// Actividad
	activityHandler := NewActivityHandler(deps.Activity)
	protected.Get("/activity/me", activityHandler.Mine)
	protected.Get("/activity", RequireRole(activityViewers...), activityHandler.Recent)

	// Dashboard y reportes
	protected.Get("/dashboard/summary", NewDashboardHandler(deps.DashboardUC).GetSummary)
	protected.Get("/reports/inventory.pdf", NewReportHandler(deps.ExportUC).InventoryPDF)
}
