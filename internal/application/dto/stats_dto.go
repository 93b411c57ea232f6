package dto

import "github.com/shopspring/decimal"

// CentralInventoryStatsResponse proyección de lectura sobre las colecciones del
// almacén central. Se recalcula bajo demanda, no se persiste.
type CentralInventoryStatsResponse struct {
	TotalParts      int64           `json:"total_parts"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"` // Σ current_qty * unit_price
	LowStockCount   int64           `json:"low_stock_count"`
	OutOfStockCount int64           `json:"out_of_stock_count"`
	PendingOrders   int64           `json:"pending_orders"`
	ApprovedOrders  int64           `json:"approved_orders"`
	PendingIssues   int64           `json:"pending_issues"` // despachadas y aún no recibidas
}
