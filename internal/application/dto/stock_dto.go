package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockRequest body para POST /api/stock.
type CreateStockRequest struct {
	PartID     string          `json:"part_id"`
	PartName   string          `json:"part_name"`
	PartNumber string          `json:"part_number"`
	HSNCode    string          `json:"hsn_code,omitempty"`
	Category   string          `json:"category,omitempty"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	CurrentQty int64           `json:"current_qty"`
	MinStock   int64           `json:"min_stock"`
}

// UpdateStockRequest body para PUT /api/stock/:id. Campos nil = sin cambio.
type UpdateStockRequest struct {
	PartName   *string          `json:"part_name,omitempty"`
	PartNumber *string          `json:"part_number,omitempty"`
	HSNCode    *string          `json:"hsn_code,omitempty"`
	Category   *string          `json:"category,omitempty"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	CurrentQty *int64           `json:"current_qty,omitempty"`
	MinStock   *int64           `json:"min_stock,omitempty"`
}

// AdjustStockRequest body para POST /api/stock/:id/adjust.
type AdjustStockRequest struct {
	AdjustmentType  string `json:"adjustment_type"` // add | remove | adjust
	Quantity        int64  `json:"quantity"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes,omitempty"`
	ReferenceNumber string `json:"reference_number,omitempty"`
}

// StockResponse representación HTTP de una fila de stock central.
type StockResponse struct {
	ID            string          `json:"id"`
	PartID        string          `json:"part_id"`
	PartName      string          `json:"part_name"`
	PartNumber    string          `json:"part_number"`
	HSNCode       string          `json:"hsn_code,omitempty"`
	Category      string          `json:"category,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	CurrentQty    int64           `json:"current_qty"`
	MinStock      int64           `json:"min_stock"`
	Status        string          `json:"status"`
	LastUpdated   time.Time       `json:"last_updated"`
	LastUpdatedBy string          `json:"last_updated_by"`
}

// StockListResponse listado paginado de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// AdjustmentResponse representación HTTP de un ajuste de stock.
type AdjustmentResponse struct {
	ID              string    `json:"id"`
	StockID         string    `json:"stock_id"`
	PartID          string    `json:"part_id"`
	PartName        string    `json:"part_name"`
	AdjustmentType  string    `json:"adjustment_type"`
	Quantity        int64     `json:"quantity"`
	PreviousQty     int64     `json:"previous_qty"`
	NewQty          int64     `json:"new_qty"`
	Clamped         bool      `json:"clamped,omitempty"`
	Reason          string    `json:"reason"`
	AdjustedBy      string    `json:"adjusted_by"`
	AdjustedAt      time.Time `json:"adjusted_at"`
	Notes           string    `json:"notes,omitempty"`
	ReferenceNumber string    `json:"reference_number,omitempty"`
}

// AdjustStockResponse respuesta del ajuste: fila actualizada + registro de auditoría.
type AdjustStockResponse struct {
	Stock      StockResponse      `json:"stock"`
	Adjustment AdjustmentResponse `json:"adjustment"`
}
