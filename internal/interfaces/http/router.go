package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-ledger/internal/application/auth"
	"github.com/tu-usuario/stock-ledger/internal/application/inventory"
	"github.com/tu-usuario/stock-ledger/internal/application/query"
	"github.com/tu-usuario/stock-ledger/internal/application/report"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	SupplierUC       *usecase.SupplierUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	ProductQueries   *query.ProductQueryUseCase
	MovementQueries  *query.MovementQueryUseCase
	ReportUC         *report.UseCase
	AuthUC           *auth.UseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Escritura de catálogo restringida a admin y bodeguero
	catalogWriter := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ProductQueries)
	products.Post("/", catalogWriter, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/profit", productHandler.Profit)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", catalogWriter, productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Disable)

	// Movimientos de stock (protegido)
	invGroup := protected.Group("/inventory")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.MovementQueries)
	invGroup.Post("/movements", movementHandler.RegisterMovement)
	invGroup.Get("/movements", movementHandler.List)
	invGroup.Get("/movements/:id", movementHandler.GetByID)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", catalogWriter, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", catalogWriter, categoryHandler.Update)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", catalogWriter, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", catalogWriter, supplierHandler.Update)

	// Reportes (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/inventory", reportHandler.InventoryPDF)
}
