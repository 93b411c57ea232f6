package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/auth"
	appinventory "github.com/jhoicas/AlmacenCentral-api/internal/application/inventory"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/issues"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/orders"
	"github.com/jhoicas/AlmacenCentral-api/internal/application/usecase"
	"github.com/jhoicas/AlmacenCentral-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC         *appinventory.StockLedgerUseCase
	PurchaseOrderUC *orders.PurchaseOrderUseCase
	PartsIssueUC    *issues.PartsIssueUseCase
	ServiceCenterUC *usecase.ServiceCenterUseCase
	StatsUC         *usecase.StatsUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
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
	almacen := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	admin := RequireRole(entity.RoleAdmin)

	// Stock central (lectura para todos los autenticados, mutación solo almacén).
	// /adjustments y /part van antes de /:id para que Fiber no los capture como ID.
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.List)
	stock.Post("/", almacen, stockHandler.Create)
	stock.Get("/adjustments", stockHandler.ListAdjustments)
	stock.Get("/part/:partId", stockHandler.GetByPartID)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Put("/:id", almacen, stockHandler.Update)
	stock.Delete("/:id", almacen, stockHandler.Delete)
	stock.Post("/:id/adjust", almacen, stockHandler.Adjust)
	stock.Get("/:id/adjustments", stockHandler.ListAdjustmentsByStock)

	// Órdenes de compra (cualquier autenticado crea; solo admin aprueba/rechaza)
	pos := protected.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	pos.Get("/", poHandler.List)
	pos.Post("/", poHandler.Create)
	pos.Get("/:id", poHandler.GetByID)
	pos.Post("/:id/approve", admin, poHandler.Approve)
	pos.Post("/:id/reject", admin, poHandler.Reject)

	// Salidas de repuestos (solo almacén despacha; el centro confirma recepción)
	issuesGroup := protected.Group("/parts-issues")
	issueHandler := NewPartsIssueHandler(deps.PartsIssueUC)
	issuesGroup.Get("/", issueHandler.List)
	issuesGroup.Post("/", almacen, issueHandler.Create)
	issuesGroup.Get("/:id", issueHandler.GetByID)
	issuesGroup.Post("/:id/receive", issueHandler.Receive)

	// Centros de servicio (solo admin registra)
	centers := protected.Group("/service-centers")
	scHandler := NewServiceCenterHandler(deps.ServiceCenterUC)
	centers.Get("/", scHandler.List)
	centers.Post("/", admin, scHandler.Create)
	centers.Get("/:id", scHandler.GetByID)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.StatsUC)
	dashboard.Get("/stats", dashboardHandler.GetStats)
}
