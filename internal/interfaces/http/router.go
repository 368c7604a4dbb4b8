package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-ledger-api/internal/application/auth"
	"github.com/jhoicas/pos-ledger-api/internal/application/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/application/orders"
	"github.com/jhoicas/pos-ledger-api/internal/application/purchases"
	"github.com/jhoicas/pos-ledger-api/internal/application/sales"
	"github.com/jhoicas/pos-ledger-api/internal/application/usecase"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	ReportUC      *usecase.ReportUseCase
	StockLedger   *inventory.StockLedgerUseCase
	TransactionUC *sales.TransactionUseCase
	OrderUC       *orders.OrderUseCase
	PurchaseUC    *purchases.PurchaseUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público: solo login)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Estado del limitador (solo admin)
	authGroup.Get("/rate-limit/:email",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin),
		authHandler.CheckRateLimit,
	)

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Post("/", authHandler.Register)
	users.Get("/", authHandler.ListUsers)
	users.Put("/:id", authHandler.UpdateUser)
	users.Delete("/:id", authHandler.DeleteUser)

	// Products (lectura para todos; escritura admin/gerente)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleGerente), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleGerente), productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleGerente), productHandler.Delete)

	// Inventory (lectura para todos; ajuste manual admin/gerente)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockLedger)
	invGroup.Get("/availability/:id", inventoryHandler.Availability)
	invGroup.Get("/history", inventoryHandler.History)
	invGroup.Post("/adjust", RequireRole(entity.RoleAdmin, entity.RoleGerente), inventoryHandler.Adjust)

	// Transactions (cualquier usuario autenticado registra ventas)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	transactions.Post("/", transactionHandler.Commit)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Get("/:id/pdf", transactionHandler.Receipt)

	// Orders (cualquier usuario autenticado)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id/status", orderHandler.Transition)
	ordersGroup.Patch("/:id", orderHandler.Update)
	ordersGroup.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleGerente), orderHandler.Delete)

	// Purchases (registro admin/gerente; eliminación solo admin)
	purchasesGroup := protected.Group("/purchases", RequireRole(entity.RoleAdmin, entity.RoleGerente))
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchasesGroup.Post("/", purchaseHandler.Create)
	purchasesGroup.Get("/", purchaseHandler.List)
	purchasesGroup.Get("/:id", purchaseHandler.GetByID)
	purchasesGroup.Delete("/:id", RequireRole(entity.RoleAdmin), purchaseHandler.Delete)

	// Reports (admin/gerente)
	reports := protected.Group("/reports", RequireRole(entity.RoleAdmin, entity.RoleGerente))
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/sales", reportHandler.SalesSummary)
	reports.Get("/stock", reportHandler.StockReport)
}
